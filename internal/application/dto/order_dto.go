package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de pedido en el body. Con ProductID referencia un
// producto del inventario; sin ProductID es línea libre y requiere Name.
type OrderLineRequest struct {
	ProductID       string          `json:"product_id,omitempty"`
	Name            string          `json:"name,omitempty"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	SelectedSizes   []string        `json:"selected_sizes,omitempty"`
	Size            string          `json:"size,omitempty"`
	Multiplier      int             `json:"multiplier,omitempty"`
	QtyInPackage    int             `json:"qty_in_package,omitempty"`
}

// SaveOrderRequest body para POST /api/orders y PUT /api/orders/:id.
// Number vacío en creación: se asigna del consecutivo; con valor es entrada
// manual y se valida contra colisiones.
type SaveOrderRequest struct {
	Number       string             `json:"number,omitempty"`
	Date         time.Time          `json:"date"`
	DocumentType string             `json:"document_type"`
	OrderType    string             `json:"order_type"`
	CustomerID   string             `json:"customer_id"`
	PaymentType  string             `json:"payment_type"`
	PaidAmount   decimal.Decimal    `json:"paid_amount"`
	Lines        []OrderLineRequest `json:"products"`
	Receiver     string             `json:"receiver"`
	Sender       string             `json:"sender"`
}

// DeleteOrderRequest body para DELETE /api/orders/:id y restore.
// ReturnQuantity=true devuelve (o re-descuenta) la existencia; false deja
// el stock exactamente como estaba, a elección explícita del caller.
type DeleteOrderRequest struct {
	ReturnQuantity bool `json:"return_quantity"`
}

// PaidEntryResponse un abono del historial de pagos.
type PaidEntryResponse struct {
	Date   time.Time `json:"date"`
	Amount string    `json:"amount"`
}

// OrderLineResponse línea en respuestas.
type OrderLineResponse struct {
	Kind            string   `json:"kind"`
	ProductID       string   `json:"product_id,omitempty"`
	Name            string   `json:"name,omitempty"`
	Quantity        int      `json:"quantity"`
	Price           string   `json:"price"`
	DiscountPercent string   `json:"discount_percent"`
	UnitOfMeasure   string   `json:"unit_of_measure"`
	SelectedSizes   []string `json:"selected_sizes,omitempty"`
	Size            string   `json:"size,omitempty"`
	Multiplier      int      `json:"multiplier,omitempty"`
	QtyInPackage    int      `json:"qty_in_package,omitempty"`
}

// OrderResponse pedido en respuestas. Total y PaidAmount van como string de
// 2 decimales (representación persistida).
type OrderResponse struct {
	ID           string              `json:"id"`
	CompanyID    string              `json:"company_id"`
	CustomerID   string              `json:"customer_id"`
	UserID       string              `json:"user_id"`
	Number       string              `json:"number"`
	Date         time.Time           `json:"date"`
	DocumentType string              `json:"document_type"`
	OrderType    string              `json:"order_type"`
	Lines        []OrderLineResponse `json:"products"`
	PaymentType  string              `json:"payment_type"`
	PaidAmount   string              `json:"paid_amount"`
	PaidHistory  []PaidEntryResponse `json:"paid_history"`
	Total        string              `json:"total"`
	Unpaid       bool                `json:"unpaid"`
	Deleted      bool                `json:"deleted"`
	Receiver     string              `json:"receiver"`
	Sender       string              `json:"sender"`
}
