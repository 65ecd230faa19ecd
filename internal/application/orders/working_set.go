package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// WorkingSet copia en memoria de los productos tocados durante una llamada
// (o dos llamadas encadenadas, en el caso revertir-y-reaplicar de la edición).
// La primera vez que se toca un producto se lee del store con bloqueo de fila;
// los toques siguientes reutilizan la copia ya mutada, de modo que líneas
// repetidas del mismo producto se evalúan contra el saldo corriente.
type WorkingSet struct {
	products repository.ProductRepository
	byID     map[string]*entity.Product
	order    []string
}

// NewWorkingSet construye el conjunto de trabajo sobre el repo atado a la tx.
func NewWorkingSet(products repository.ProductRepository) *WorkingSet {
	return &WorkingSet{
		products: products,
		byID:     make(map[string]*entity.Product),
	}
}

// Get devuelve la copia de trabajo del producto, leyéndola con FOR UPDATE
// la primera vez. Producto inexistente o borrado retorna ErrNotFound.
func (ws *WorkingSet) Get(ctx context.Context, productID string) (*entity.Product, error) {
	if p, ok := ws.byID[productID]; ok {
		return p, nil
	}
	p, err := ws.products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Deleted {
		return nil, domain.ErrNotFound
	}
	cp := p.Clone()
	ws.byID[productID] = cp
	ws.order = append(ws.order, productID)
	return cp, nil
}

// Touched devuelve las copias mutadas en el orden en que se tocaron.
func (ws *WorkingSet) Touched() []*entity.Product {
	out := make([]*entity.Product, 0, len(ws.order))
	for _, id := range ws.order {
		out = append(out, ws.byID[id])
	}
	return out
}

// Changes devuelve los cambios de existencia para el sincronizador externo.
func (ws *WorkingSet) Changes() []StockChange {
	out := make([]StockChange, 0, len(ws.order))
	for _, id := range ws.order {
		out = append(out, StockChange{ProductID: id, NewQuantity: ws.byID[id].Quantity})
	}
	return out
}
