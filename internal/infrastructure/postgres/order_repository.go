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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Líneas e historial de pagos se guardan como jsonb; la anulación es lógica.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, customer_id, user_id, number, date, document_type,
	order_type, lines, payment_type, paid_amount, paid_history, total, unpaid, deleted,
	receiver, sender, created_at, updated_at`

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	lines, history, err := marshalOrderJSON(order)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.CompanyID, order.CustomerID, order.UserID, order.Number, order.Date,
		order.DocumentType, order.OrderType, lines, order.PaymentType,
		order.PaidAmount, history, order.Total, order.Unpaid, order.Deleted,
		order.Receiver, order.Sender, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID (incluye anulados).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update actualiza el pedido completo (incluido el flag de anulación).
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	lines, history, err := marshalOrderJSON(order)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders
		SET customer_id = $2, number = $3, date = $4, document_type = $5, order_type = $6,
		    lines = $7, payment_type = $8, paid_amount = $9, paid_history = $10, total = $11,
		    unpaid = $12, deleted = $13, receiver = $14, sender = $15, updated_at = $16
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.CustomerID, order.Number, order.Date, order.DocumentType, order.OrderType,
		lines, order.PaymentType, order.PaidAmount, history, order.Total,
		order.Unpaid, order.Deleted, order.Receiver, order.Sender, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ListByCompany lista pedidos de la empresa, más recientes primero.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE company_id = $1 AND (deleted = false OR $2)
		ORDER BY date DESC, number DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, includeDeleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// NumberExists verifica si un pedido activo de la empresa y familia ya usa el
// número, excluyendo opcionalmente un pedido (edición).
func (r *OrderRepo) NumberExists(ctx context.Context, companyID, family, number, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE company_id = $1 AND number = $2 AND deleted = false
			  AND document_type = ANY($3)
			  AND ($4 = '' OR id <> $4)
		)`
	var exists bool
	err := r.q.QueryRow(ctx, query, companyID, number, entity.FamilyDocumentTypes(family), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("number exists: %w", err)
	}
	return exists, nil
}

// MaxNumber devuelve el mayor número (como entero) entre los pedidos activos
// de la empresa y familia; 0 si no hay ninguno.
func (r *OrderRepo) MaxNumber(ctx context.Context, companyID, family string) (int64, error) {
	query := `
		SELECT COALESCE(MAX(number::bigint), 0) FROM orders
		WHERE company_id = $1 AND deleted = false AND document_type = ANY($2)`
	var max int64
	err := r.q.QueryRow(ctx, query, companyID, entity.FamilyDocumentTypes(family)).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max number: %w", err)
	}
	return max, nil
}

func marshalOrderJSON(order *entity.Order) (lines, history []byte, err error) {
	lines, err = json.Marshal(order.Lines)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal lines: %w", err)
	}
	if order.PaidHistory == nil {
		history = []byte("[]")
	} else if history, err = json.Marshal(order.PaidHistory); err != nil {
		return nil, nil, fmt.Errorf("marshal paid_history: %w", err)
	}
	return lines, history, nil
}

func scanOrder(row pgxScanner) (*entity.Order, error) {
	var o entity.Order
	var lines, history []byte
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &o.UserID, &o.Number, &o.Date,
		&o.DocumentType, &o.OrderType, &lines, &o.PaymentType,
		&o.PaidAmount, &history, &o.Total, &o.Unpaid, &o.Deleted,
		&o.Receiver, &o.Sender, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal lines: %w", err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &o.PaidHistory); err != nil {
			return nil, fmt.Errorf("unmarshal paid_history: %w", err)
		}
	}
	return &o, nil
}
