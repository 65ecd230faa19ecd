package repository

import "context"

// SequenceRepository define el puerto del consecutivo de documentos.
// Increment debe ser un incremento-y-lectura atómico en el store (no un
// read-modify-write), para que dos llamadas concurrentes nunca reciban
// el mismo valor. Raise sube el contador hasta min si está por debajo.
type SequenceRepository interface {
	Increment(ctx context.Context, name, companyID string) (int64, error)
	Set(ctx context.Context, name, companyID string, value int64) error
	Raise(ctx context.Context, name, companyID string, min int64) error
}
