// Package inventory implementa el libro de inventario: el único punto por el
// que pasa toda mutación de stock. El stock persistido es la única fuente de
// verdad; no se lleva un historial de movimientos aparte.
package inventory

import (
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// Line una solicitud (producto, cantidad) a validar contra el stock.
type Line struct {
	ProductID string
	Quantity  int
}

// Ledger opera sobre el repositorio de productos de la transacción en curso.
// Construirlo dentro del callback del TxRunner para que las validaciones y
// ajustes queden dentro de la misma transacción que el resto del pedido.
type Ledger struct {
	products repository.ProductRepository
}

// NewLedger construye el libro atado al repositorio recibido (pool o tx).
func NewLedger(products repository.ProductRepository) *Ledger {
	return &Ledger{products: products}
}

// ValidateAvailability verifica en una sola consulta por lote que todos los
// productos solicitados existen y tienen stock suficiente. No muta nada.
// Las filas quedan bloqueadas (FOR UPDATE) hasta el fin de la transacción,
// así el ajuste posterior no puede perder la verificación.
func (l *Ledger) ValidateAvailability(lines []Line) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}
	products, err := l.products.GetByIDsForUpdate(ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, ln := range lines {
		p, ok := byID[ln.ProductID]
		if !ok {
			return &domain.NotFoundError{Entity: "producto", ID: ln.ProductID}
		}
		if p.Stock < ln.Quantity {
			return &domain.InsufficientStockError{ProductID: p.ID}
		}
	}
	return nil
}

// Adjust aplica stock += delta (negativo consume, positivo repone).
// Falla sin dejar cambio alguno si el producto no existe o si el resultado
// sería negativo; el repositorio lo resuelve con un UPDATE condicional, por
// lo que nunca es observable un stock bajo cero.
func (l *Ledger) Adjust(productID string, delta int) error {
	return l.products.AdjustStock(productID, delta)
}

// Snapshot devuelve el mapa de productos referenciados, bloqueando las filas.
// Lo usa la reconciliación de pedidos para calcular el plan de deltas sobre
// una sola lectura por lote en vez de N consultas.
func (l *Ledger) Snapshot(ids []string) (map[string]*entity.Product, error) {
	if len(ids) == 0 {
		return map[string]*entity.Product{}, nil
	}
	products, err := l.products.GetByIDsForUpdate(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}
