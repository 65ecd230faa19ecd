package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación de SequenceRepository sobre PostgreSQL
// (usable con pool o tx). El consecutivo vive en document_counters.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Increment incremento-y-lectura atómico del contador (familia, empresa).
// El upsert inicializa en 1 si el contador no existe; un solo statement,
// nunca read-modify-write, para que dos callers concurrentes no reciban
// el mismo valor.
func (r *SequenceRepo) Increment(ctx context.Context, name, companyID string) (int64, error) {
	query := `
		INSERT INTO document_counters (name, company_id, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (name, company_id)
		DO UPDATE SET seq = document_counters.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, name, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}
	return seq, nil
}

// Set fija el contador en un valor exacto (sanado de colisiones).
func (r *SequenceRepo) Set(ctx context.Context, name, companyID string, value int64) error {
	query := `
		INSERT INTO document_counters (name, company_id, seq)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, company_id)
		DO UPDATE SET seq = EXCLUDED.seq`
	if _, err := r.q.Exec(ctx, query, name, companyID, value); err != nil {
		return fmt.Errorf("set counter: %w", err)
	}
	return nil
}

// Raise sube el contador hasta min si está por debajo; nunca lo baja.
func (r *SequenceRepo) Raise(ctx context.Context, name, companyID string, min int64) error {
	query := `
		INSERT INTO document_counters (name, company_id, seq)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, company_id)
		DO UPDATE SET seq = GREATEST(document_counters.seq, EXCLUDED.seq)`
	if _, err := r.q.Exec(ctx, query, name, companyID, min); err != nil {
		return fmt.Errorf("raise counter: %w", err)
	}
	return nil
}
