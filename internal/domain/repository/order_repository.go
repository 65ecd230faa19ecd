package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Los pedidos nunca se borran físicamente: Update con Deleted=true anula.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ListByCompany(ctx context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*entity.Order, error)
	// NumberExists verifica si un pedido activo de la empresa y familia de
	// documento ya usa el número, excluyendo opcionalmente un pedido (edición).
	NumberExists(ctx context.Context, companyID, family, number, excludeID string) (bool, error)
	// MaxNumber devuelve el mayor número (como entero) entre los pedidos
	// activos de la empresa y familia; 0 si no hay ninguno.
	MaxNumber(ctx context.Context, companyID, family string) (int64, error)
}
