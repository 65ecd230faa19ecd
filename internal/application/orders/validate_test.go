package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func newValidatorHarness() (*orders.Validator, *memStore) {
	s := newMemStore()
	s.companies[testCompany] = &entity.Company{ID: testCompany, Name: "ACME"}
	s.customers[testCustomer] = &entity.Customer{ID: testCustomer, CompanyID: testCompany, Name: "Cliente"}
	s.products["p1"] = &entity.Product{ID: "p1", CompanyID: testCompany, Code: "P-1", Quantity: 10, Multiplier: 1}
	v := orders.NewValidator(&fakeCustomerRepo{s: s}, &fakeCompanyRepo{s: s}, &fakeProductRepo{s: s})
	return v, s
}

func validReq() dto.SaveOrderRequest {
	return dto.SaveOrderRequest{
		Date:         time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		DocumentType: entity.DocumentInvoice,
		OrderType:    entity.OrderRetail,
		CustomerID:   testCustomer,
		PaymentType:  entity.PaymentCash,
		Lines:        []dto.OrderLineRequest{lineReq("p1", 1, "10", "0")},
		Receiver:     "Juan",
		Sender:       "Ana",
	}
}

func TestValidateOrder_RequestValido_Nil(t *testing.T) {
	v, _ := newValidatorHarness()
	req := validReq()
	assert.Nil(t, v.ValidateOrder(context.Background(), testCompany, &req))
}

// La validación corta en el PRIMER fallo, en orden fijo: cada caso rompe un
// campo y además uno posterior, y comprueba que reporta el primero.
func TestValidateOrder_PrimerFalloManda(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*dto.SaveOrderRequest)
		status   int
		property string
	}{
		{
			name: "fecha vacía gana a documento inválido",
			mutate: func(r *dto.SaveOrderRequest) {
				r.Date = time.Time{}
				r.DocumentType = "nope"
			},
			status:   400,
			property: "date",
		},
		{
			name: "documento inválido gana a cliente vacío",
			mutate: func(r *dto.SaveOrderRequest) {
				r.DocumentType = "nope"
				r.CustomerID = ""
			},
			status:   400,
			property: "document_type",
		},
		{
			name:     "cliente vacío",
			mutate:   func(r *dto.SaveOrderRequest) { r.CustomerID = "" },
			status:   400,
			property: "customer_id",
		},
		{
			name:     "cliente inexistente",
			mutate:   func(r *dto.SaveOrderRequest) { r.CustomerID = "fantasma" },
			status:   404,
			property: "customer_id",
		},
		{
			name: "tipo de pedido inválido gana a forma de pago",
			mutate: func(r *dto.SaveOrderRequest) {
				r.OrderType = "nope"
				r.PaymentType = "nope"
			},
			status:   400,
			property: "order_type",
		},
		{
			name:     "forma de pago inválida",
			mutate:   func(r *dto.SaveOrderRequest) { r.PaymentType = "trueque" },
			status:   400,
			property: "payment_type",
		},
		{
			name:     "monto pagado negativo",
			mutate:   func(r *dto.SaveOrderRequest) { r.PaidAmount = dec("-1") },
			status:   400,
			property: "paid_amount",
		},
		{
			name:     "sin líneas",
			mutate:   func(r *dto.SaveOrderRequest) { r.Lines = nil },
			status:   400,
			property: "products",
		},
		{
			name:     "producto inexistente en línea",
			mutate:   func(r *dto.SaveOrderRequest) { r.Lines[0].ProductID = "fantasma" },
			status:   404,
			property: "products[0].product_id",
		},
		{
			name:     "cantidad cero",
			mutate:   func(r *dto.SaveOrderRequest) { r.Lines[0].Quantity = 0 },
			status:   400,
			property: "products[0].quantity",
		},
		{
			name:     "precio negativo",
			mutate:   func(r *dto.SaveOrderRequest) { r.Lines[0].Price = dec("-2") },
			status:   400,
			property: "products[0].price",
		},
		{
			name:     "descuento mayor a 100",
			mutate:   func(r *dto.SaveOrderRequest) { r.Lines[0].DiscountPercent = dec("101") },
			status:   400,
			property: "products[0].discount_percent",
		},
		{
			name:     "unidad de medida vacía",
			mutate:   func(r *dto.SaveOrderRequest) { r.Lines[0].UnitOfMeasure = "" },
			status:   400,
			property: "products[0].unit_of_measure",
		},
		{
			name: "línea libre sin nombre",
			mutate: func(r *dto.SaveOrderRequest) {
				r.Lines[0].ProductID = ""
				r.Lines[0].Name = ""
			},
			status:   400,
			property: "products[0].name",
		},
		{
			name:     "receptor vacío",
			mutate:   func(r *dto.SaveOrderRequest) { r.Receiver = "" },
			status:   400,
			property: "receiver",
		},
		{
			name:     "emisor vacío",
			mutate:   func(r *dto.SaveOrderRequest) { r.Sender = "" },
			status:   400,
			property: "sender",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newValidatorHarness()
			req := validReq()
			tt.mutate(&req)

			ve := v.ValidateOrder(context.Background(), testCompany, &req)
			require.NotNil(t, ve)
			assert.Equal(t, tt.status, ve.Status)
			assert.Equal(t, tt.property, ve.Property)
		})
	}
}

func TestValidateOrder_EmpresaInexistente_404(t *testing.T) {
	v, _ := newValidatorHarness()
	req := validReq()

	ve := v.ValidateOrder(context.Background(), "fantasma", &req)
	require.NotNil(t, ve)
	assert.Equal(t, 404, ve.Status)
	assert.Equal(t, "company_id", ve.Property)
	assert.Equal(t, "fantasma", ve.EntityID)
}

func TestValidateOrder_MayoristaVariableSinTallas_Rechazado(t *testing.T) {
	v, s := newValidatorHarness()
	s.products["p2"] = &entity.Product{
		ID: "p2", CompanyID: testCompany, Code: "P-2", Multiplier: 1, Quantity: 10,
		Sizes: []entity.Size{{Name: "S", Quantity: 10}},
	}
	req := validReq()
	req.OrderType = entity.OrderWholesale
	req.Lines = []dto.OrderLineRequest{lineReq("p2", 1, "10", "0")}

	ve := v.ValidateOrder(context.Background(), testCompany, &req)
	require.NotNil(t, ve)
	assert.Equal(t, "products[0].selected_sizes", ve.Property)
}

func TestValidateOrder_ProductoBorrado_404(t *testing.T) {
	v, s := newValidatorHarness()
	s.products["p1"].Deleted = true
	req := validReq()

	ve := v.ValidateOrder(context.Background(), testCompany, &req)
	require.NotNil(t, ve)
	assert.Equal(t, 404, ve.Status)
	assert.Equal(t, "p1", ve.EntityID)
}
