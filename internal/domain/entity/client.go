package entity

import "time"

// Client representa un cliente de la tienda (destinatario de pedidos).
type Client struct {
	ID        string
	Name      string
	Email     string // único
	CPF       string // único
	Whatsapp  string // opcional; destino de notificaciones
	CreatedAt time.Time
	UpdatedAt time.Time
}
