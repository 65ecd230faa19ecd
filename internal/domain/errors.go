package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOrderDeleted      = errors.New("el pedido está anulado")
)

// ValidationError error de validación de campo: primer fallo, con la propiedad
// ofensora y el ID de la entidad referida cuando aplica.
// Status es 400 (dato inválido) o 404 (entidad referida inexistente).
type ValidationError struct {
	Status   int
	Message  string
	Property string
	EntityID string
}

func (e *ValidationError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s (%s=%s)", e.Message, e.Property, e.EntityID)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Property)
}

// InsufficientStockError identifica el producto (y talla, si es variable)
// cuya existencia no alcanza para el débito solicitado.
type InsufficientStockError struct {
	ProductID   string
	ProductCode string
	Size        string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.Size != "" {
		return fmt.Sprintf("stock insuficiente para %s talla %s: solicitado %d, disponible %d",
			e.ProductCode, e.Size, e.Requested, e.Available)
	}
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
		e.ProductCode, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateNumberError colisión de número de documento que no pudo resolverse.
type DuplicateNumberError struct {
	CompanyID string
	Family    string
	Number    string
}

func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("número de documento duplicado %s (familia %s)", e.Number, e.Family)
}

func (e *DuplicateNumberError) Unwrap() error { return ErrDuplicate }
