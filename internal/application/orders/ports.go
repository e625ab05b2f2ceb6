package orders

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que líneas, cabecera y ajustes de
// stock de una operación se confirmen o reviertan como unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier envía un aviso al cliente. Mejor esfuerzo: el caso de uso lo
// dispara fuera de la transacción y descarta el error (solo lo loguea).
type Notifier interface {
	Send(to, message string) error
}
