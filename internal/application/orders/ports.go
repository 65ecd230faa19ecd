package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la reconciliación de stock,
// el consecutivo y la escritura del pedido se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// StockChange nueva existencia de un producto tras una operación del ciclo de vida.
type StockChange struct {
	ProductID   string `json:"product_id"`
	NewQuantity int    `json:"new_quantity"`
}

// StockNotifier publica los cambios de existencia al sincronizador externo
// (e-commerce). Fire-and-forget: el motor no reintenta ni espera.
type StockNotifier interface {
	Publish(changes []StockChange)
}
