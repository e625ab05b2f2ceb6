package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// GetByID y GetByIDForUpdate devuelven el pedido con sus líneas cargadas en
// una consulta por lote (nunca carga perezosa).
type OrderRepository interface {
	Create(order *entity.Order) error // solo cabecera
	GetByID(id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) para
	// serializar mutaciones concurrentes sobre el mismo pedido.
	GetByIDForUpdate(id string) (*entity.Order, error)
	ListAll() ([]*entity.Order, error)
	ListByCreator(userID string) ([]*entity.Order, error)
	UpdateHeader(order *entity.Order) error
	CreateLine(line *entity.OrderLine) error
	UpdateLineQuantity(lineID string, quantity int) error
	DeleteLine(lineID string) error
	DeleteLines(orderID string) error
	Delete(id string) error
}
