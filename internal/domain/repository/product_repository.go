package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	Section   string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Available *bool // true: stock > 0; false: stock <= 0
	Limit     int
	Offset    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustStock es el único camino de mutación del stock: aplica el delta de
// forma condicional (stock resultante >= 0) y no deja estado intermedio.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetByIDs trae todos los productos referenciados en una sola consulta.
	GetByIDs(ids []string) ([]*entity.Product, error)
	// GetByIDsForUpdate igual que GetByIDs pero bloqueando las filas
	// (SELECT FOR UPDATE, ids ordenados) dentro de la transacción actual.
	GetByIDsForUpdate(ids []string) ([]*entity.Product, error)
	// AdjustStock aplica stock += delta si el resultado no es negativo.
	// Devuelve NotFoundError si el producto no existe e
	// InsufficientStockError si el delta dejaría el stock bajo cero.
	AdjustStock(productID string, delta int) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
