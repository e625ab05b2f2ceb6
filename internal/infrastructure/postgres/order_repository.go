package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas se cargan siempre con una consulta por lote explícita.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido (las líneas van por CreateLine).
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, client_id, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ClientID, order.Status, order.CreatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el pedido bloqueando su fila (SELECT FOR UPDATE)
// para serializar mutaciones concurrentes sobre el mismo pedido.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.getByID(id, true)
}

func (r *OrderRepo) getByID(id string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT id, client_id, status, created_at, created_by FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ClientID, &o.Status, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.linesByOrderIDs([]string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]
	return &o, nil
}

// ListAll lista todos los pedidos con sus líneas.
func (r *OrderRepo) ListAll() ([]*entity.Order, error) {
	return r.list(`SELECT id, client_id, status, created_at, created_by FROM orders ORDER BY created_at DESC`)
}

// ListByCreator lista los pedidos creados por un usuario.
func (r *OrderRepo) ListByCreator(userID string) ([]*entity.Order, error) {
	return r.list(`SELECT id, client_id, status, created_at, created_by FROM orders WHERE created_by = $1 ORDER BY created_at DESC`, userID)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	var ids []string
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.Status, &o.CreatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	lines, err := r.linesByOrderIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Lines = lines[o.ID]
	}
	return list, nil
}

// linesByOrderIDs carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) linesByOrderIDs(orderIDs []string) (map[string][]entity.OrderLine, error) {
	result := make(map[string][]entity.OrderLine, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT id, order_id, product_id, quantity
		FROM order_lines WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ln entity.OrderLine
		if err := rows.Scan(&ln.ID, &ln.OrderID, &ln.ProductID, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		result[ln.OrderID] = append(result[ln.OrderID], ln)
	}
	return result, rows.Err()
}

// UpdateHeader actualiza status y client_id del pedido (created_by es inmutable).
func (r *OrderRepo) UpdateHeader(order *entity.Order) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, client_id = $3 WHERE id = $1`,
		order.ID, order.Status, order.ClientID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de pedido.
func (r *OrderRepo) CreateLine(line *entity.OrderLine) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO order_lines (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
		line.ID, line.OrderID, line.ProductID, line.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// UpdateLineQuantity cambia la cantidad de una línea.
func (r *OrderRepo) UpdateLineQuantity(lineID string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE order_lines SET quantity = $2 WHERE id = $1`,
		lineID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea por ID.
func (r *OrderRepo) DeleteLine(lineID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	return nil
}

// DeleteLines elimina todas las líneas de un pedido.
func (r *OrderRepo) DeleteLines(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_lines WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	return nil
}

// Delete elimina la cabecera del pedido.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
