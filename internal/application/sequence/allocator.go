package sequence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// NumberWidth ancho del consecutivo persistido (ceros a la izquierda).
const NumberWidth = 10

// Allocator emite y valida consecutivos de documento por (empresa, familia).
// Se construye con los repos atados a la transacción del caller, de modo que
// la asignación del número y la escritura del pedido confirman juntas.
type Allocator struct {
	counters repository.SequenceRepository
	orders   repository.OrderRepository
}

// NewAllocator construye el asignador sobre los repos (pool o tx).
func NewAllocator(counters repository.SequenceRepository, orders repository.OrderRepository) *Allocator {
	return &Allocator{counters: counters, orders: orders}
}

// Format formatea un valor del contador como número de documento.
func Format(seq int64) string {
	return fmt.Sprintf("%0*d", NumberWidth, seq)
}

// Next emite el siguiente número para la familia y empresa.
//
// Sin explicit: incremento-y-lectura atómico del contador (se inicializa en 1
// si no existe). Si el número ya lo usa un pedido activo — pedidos importados
// fuera de secuencia — se sana localmente: max(existentes)+1 y el contador se
// persiste en ese valor.
//
// Con explicit (entrada manual o edición): valida que ningún otro pedido
// activo lo use (excludeID excluye al pedido en edición) y eleva el contador
// hasta ese valor para que la asignación automática nunca lo reutilice.
func (a *Allocator) Next(ctx context.Context, family, companyID, explicit, excludeID string) (string, error) {
	if explicit != "" {
		return a.validateExplicit(ctx, family, companyID, explicit, excludeID)
	}

	seq, err := a.counters.Increment(ctx, family, companyID)
	if err != nil {
		return "", fmt.Errorf("incrementar consecutivo %s/%s: %w", family, companyID, err)
	}
	number := Format(seq)

	taken, err := a.orders.NumberExists(ctx, companyID, family, number, "")
	if err != nil {
		return "", fmt.Errorf("verificar consecutivo: %w", err)
	}
	if !taken {
		return number, nil
	}

	// Colisión con un pedido fuera de secuencia: saltar a max+1.
	max, err := a.orders.MaxNumber(ctx, companyID, family)
	if err != nil {
		return "", fmt.Errorf("máximo consecutivo: %w", err)
	}
	seq = max + 1
	if err := a.counters.Set(ctx, family, companyID, seq); err != nil {
		return "", fmt.Errorf("fijar consecutivo: %w", err)
	}
	return Format(seq), nil
}

func (a *Allocator) validateExplicit(ctx context.Context, family, companyID, explicit, excludeID string) (string, error) {
	taken, err := a.orders.NumberExists(ctx, companyID, family, explicit, excludeID)
	if err != nil {
		return "", fmt.Errorf("verificar número manual: %w", err)
	}
	if taken {
		return "", &domain.DuplicateNumberError{CompanyID: companyID, Family: family, Number: explicit}
	}
	n, err := strconv.ParseInt(explicit, 10, 64)
	if err != nil {
		return "", &domain.ValidationError{Status: 400, Message: "número de documento inválido", Property: "number"}
	}
	if err := a.counters.Raise(ctx, family, companyID, n); err != nil {
		return "", fmt.Errorf("elevar consecutivo: %w", err)
	}
	return Format(n), nil
}

// FamilyFor familia de numeración del tipo de documento.
func FamilyFor(documentType string) string {
	return entity.DocumentFamily(documentType)
}
