package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Validator valida requests de pedido contra el catálogo.
type Validator struct {
	customers repository.CustomerRepository
	companies repository.CompanyRepository
	products  repository.ProductRepository
}

// NewValidator construye el validador.
func NewValidator(
	customers repository.CustomerRepository,
	companies repository.CompanyRepository,
	products repository.ProductRepository,
) *Validator {
	return &Validator{customers: customers, companies: companies, products: products}
}

var hundred = decimal.NewFromInt(100)

// ValidateOrder ejecuta las comprobaciones en orden fijo y retorna en el
// PRIMER fallo (no agrega). nil significa request válido.
func (v *Validator) ValidateOrder(ctx context.Context, companyID string, in *dto.SaveOrderRequest) *domain.ValidationError {
	if in.Date.IsZero() {
		return invalid("la fecha es obligatoria", "date")
	}
	if !known(entity.DocumentTypes, in.DocumentType) {
		return invalid("tipo de documento desconocido", "document_type")
	}
	if in.CustomerID == "" {
		return invalid("el cliente es obligatorio", "customer_id")
	}
	customer, err := v.customers.GetByID(ctx, in.CustomerID)
	if err != nil || customer == nil {
		return missing("cliente no encontrado", "customer_id", in.CustomerID)
	}
	if !known(entity.OrderTypes, in.OrderType) {
		return invalid("tipo de pedido desconocido", "order_type")
	}
	if !known(entity.PaymentTypes, in.PaymentType) {
		return invalid("forma de pago desconocida", "payment_type")
	}
	if in.PaidAmount.IsNegative() {
		return invalid("el monto pagado no puede ser negativo", "paid_amount")
	}
	company, err := v.companies.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return missing("empresa no encontrada", "company_id", companyID)
	}
	if len(in.Lines) == 0 {
		return invalid("el pedido requiere al menos un producto", "products")
	}
	catalog, fetchErr := v.fetchProducts(ctx, in.Lines)
	for i := range in.Lines {
		if ve := v.validateLine(in.OrderType, i, &in.Lines[i], catalog, fetchErr); ve != nil {
			return ve
		}
	}
	if in.Receiver == "" {
		return invalid("el receptor es obligatorio", "receiver")
	}
	if in.Sender == "" {
		return invalid("el emisor es obligatorio", "sender")
	}
	return nil
}

// fetchProducts trae en una sola consulta los productos referenciados por las
// líneas. El error se difiere: se reporta contra la primera línea de producto,
// respetando el orden de validación.
func (v *Validator) fetchProducts(ctx context.Context, lines []dto.OrderLineRequest) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	for _, line := range lines {
		if line.ProductID != "" && !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	catalog := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return catalog, nil
	}
	products, err := v.products.GetManyByIDs(ctx, ids)
	if err != nil {
		return catalog, err
	}
	for _, p := range products {
		if !p.Deleted {
			catalog[p.ID] = p
		}
	}
	return catalog, nil
}

func (v *Validator) validateLine(orderType string, i int, line *dto.OrderLineRequest, catalog map[string]*entity.Product, fetchErr error) *domain.ValidationError {
	prop := func(field string) string { return fmt.Sprintf("products[%d].%s", i, field) }

	if line.ProductID != "" {
		product := catalog[line.ProductID]
		if fetchErr != nil || product == nil {
			return missing("producto no encontrado", prop("product_id"), line.ProductID)
		}
		if orderType == entity.OrderWholesale && product.HasSizes() && len(line.SelectedSizes) == 0 {
			return invalid("producto con tallas requiere tallas seleccionadas", prop("selected_sizes"))
		}
	} else if line.Name == "" {
		return invalid("línea sin producto requiere un nombre", prop("name"))
	}
	if line.Quantity <= 0 {
		return invalid("la cantidad debe ser mayor que cero", prop("quantity"))
	}
	if line.Price.IsNegative() {
		return invalid("el precio no puede ser negativo", prop("price"))
	}
	if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
		return invalid("el descuento debe estar entre 0 y 100", prop("discount_percent"))
	}
	if line.UnitOfMeasure == "" {
		return invalid("la unidad de medida es obligatoria", prop("unit_of_measure"))
	}
	return nil
}

func known(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func invalid(message, property string) *domain.ValidationError {
	return &domain.ValidationError{Status: 400, Message: message, Property: property}
}

func missing(message, property, entityID string) *domain.ValidationError {
	return &domain.ValidationError{Status: 404, Message: message, Property: property, EntityID: entityID}
}
