package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, description, price, barcode, section, stock, expiration_date, image_path, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, description, price, barcode, section, stock, expiration_date, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Description, product.Price, product.Barcode, product.Section,
		product.Stock, product.ExpirationDate, product.ImagePath, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// GetByIDs trae todos los productos referenciados en una sola consulta.
func (r *ProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	return r.getByIDs(ids, false)
}

// GetByIDsForUpdate igual que GetByIDs pero bloqueando las filas (SELECT FOR UPDATE).
// Los ids se ordenan para que transacciones concurrentes adquieran los
// bloqueos en el mismo orden y no se interbloqueen.
func (r *ProductRepo) GetByIDsForUpdate(ids []string) ([]*entity.Product, error) {
	return r.getByIDs(ids, true)
}

func (r *ProductRepo) getByIDs(ids []string, forUpdate bool) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(context.Background(), query, sorted)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Description, &p.Price, &p.Barcode, &p.Section,
			&p.Stock, &p.ExpirationDate, &p.ImagePath, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// AdjustStock aplica stock += delta de forma condicional: el predicado
// stock + delta >= 0 garantiza que nunca se confirme un stock negativo,
// incluso bajo concurrencia, sin leer el valor antes.
func (r *ProductRepo) AdjustStock(productID string, delta int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1 AND stock + $2 >= 0`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Distinguir producto inexistente de stock insuficiente.
		p, err := r.GetByID(productID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.NotFoundError{Entity: "producto", ID: productID}
		}
		return &domain.InsufficientStockError{ProductID: productID}
	}
	return nil
}

// List lista productos con filtros opcionales y paginación.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if filter.Section != "" {
		query += ` AND section = ` + arg(filter.Section)
	}
	if filter.MinPrice != nil {
		query += ` AND price >= ` + arg(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += ` AND price <= ` + arg(*filter.MaxPrice)
	}
	if filter.Available != nil {
		if *filter.Available {
			query += ` AND stock > 0`
		} else {
			query += ` AND stock <= 0`
		}
	}
	query += ` ORDER BY created_at DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Description, &p.Price, &p.Barcode, &p.Section,
			&p.Stock, &p.ExpirationDate, &p.ImagePath, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente. No toca Stock: eso es del libro de inventario.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET description = $2, price = $3, barcode = $4, section = $5, expiration_date = $6, image_path = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Description, product.Price, product.Barcode, product.Section,
		product.ExpirationDate, product.ImagePath, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Description, &p.Price, &p.Barcode, &p.Section,
		&p.Stock, &p.ExpirationDate, &p.ImagePath, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
