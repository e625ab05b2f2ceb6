package entity

import "time"

// StatusPending estado por defecto de un pedido recién creado.
// El status es una etiqueta libre del caller; no hay máquina de estados.
const StatusPending = "pending"

// Order representa un pedido. CreatedBy es el usuario creador y es inmutable.
// Las líneas pertenecen en exclusiva al pedido: se borran con él, y toda
// eliminación repone primero el stock reservado.
type Order struct {
	ID        string
	ClientID  string
	Status    string
	CreatedAt time.Time
	CreatedBy string
	Lines     []OrderLine
}

// OrderLine una entrada (producto, cantidad) dentro de un pedido.
// Invariante: Quantity > 0.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}
