package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Las tallas se guardan como jsonb.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, code, barcode, name, quantity, multiplier, sizes,
	out_of_stock, opened_packages, wholesale_price, retail_price, delivery_price, deleted,
	created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	sizes, err := marshalSizes(product.Sizes)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.Code, product.Barcode, product.Name,
		product.Quantity, product.Multiplier, sizes,
		product.OutOfStock, product.OpenedPackages,
		product.WholesalePrice, product.RetailPrice, product.DeliveryPrice, product.Deleted,
		product.CreatedAt, product.UpdatedAt,
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
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetManyByIDs obtiene varios productos por ID (sin bloqueo; para validación).
func (r *ProductRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE)
// para que dos pedidos concurrentes no evalúen el mismo saldo.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza los campos CRUD y derivados del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	sizes, err := marshalSizes(product.Sizes)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET code = $2, barcode = $3, name = $4, quantity = $5, multiplier = $6, sizes = $7,
		    out_of_stock = $8, opened_packages = $9,
		    wholesale_price = $10, retail_price = $11, delivery_price = $12, updated_at = $13
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.Code, product.Barcode, product.Name,
		product.Quantity, product.Multiplier, sizes,
		product.OutOfStock, product.OpenedPackages,
		product.WholesalePrice, product.RetailPrice, product.DeliveryPrice, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock persiste solo los campos de existencia (usado por el motor de pedidos).
func (r *ProductRepo) UpdateStock(ctx context.Context, product *entity.Product) error {
	sizes, err := marshalSizes(product.Sizes)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET quantity = $2, sizes = $3, out_of_stock = $4, opened_packages = $5, updated_at = now()
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.Quantity, sizes, product.OutOfStock, product.OpenedPackages,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// ListByCompany lista productos activos por empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE company_id = $1 AND deleted = false
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func marshalSizes(sizes []entity.Size) ([]byte, error) {
	if sizes == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(sizes)
	if err != nil {
		return nil, fmt.Errorf("marshal sizes: %w", err)
	}
	return b, nil
}

func scanProduct(row pgxScanner) (*entity.Product, error) {
	var p entity.Product
	var sizes []byte
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Barcode, &p.Name,
		&p.Quantity, &p.Multiplier, &sizes,
		&p.OutOfStock, &p.OpenedPackages,
		&p.WholesalePrice, &p.RetailPrice, &p.DeliveryPrice, &p.Deleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
			return nil, fmt.Errorf("unmarshal sizes: %w", err)
		}
	}
	return &p, nil
}
