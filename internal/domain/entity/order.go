package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento.
const (
	DocumentInvoice  = "invoice"  // factura
	DocumentStokova  = "stokova"  // nota de entrega
	DocumentProforma = "proforma" // proforma
	DocumentCredit   = "credit"   // nota crédito (efecto inverso sobre stock)
)

// Tipos de pedido.
const (
	OrderWholesale = "wholesale" // mayorista: por paquetes y tallas seleccionadas
	OrderRetail    = "retail"    // minorista: por unidades de una talla
)

// Formas de pago.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// DocumentTypes tipos de documento conocidos.
var DocumentTypes = []string{DocumentInvoice, DocumentStokova, DocumentProforma, DocumentCredit}

// OrderTypes tipos de pedido conocidos.
var OrderTypes = []string{OrderWholesale, OrderRetail}

// PaymentTypes formas de pago conocidas.
var PaymentTypes = []string{PaymentCash, PaymentCard, PaymentTransfer}

// DocumentFamily devuelve la familia de numeración del tipo de documento.
// Factura y nota crédito comparten consecutivo; los demás tienen el suyo.
func DocumentFamily(documentType string) string {
	if documentType == DocumentCredit {
		return DocumentInvoice
	}
	return documentType
}

// FamilyDocumentTypes devuelve los tipos de documento que comparten la familia.
func FamilyDocumentTypes(family string) []string {
	if family == DocumentInvoice {
		return []string{DocumentInvoice, DocumentCredit}
	}
	return []string{family}
}

// LineKind discrimina la variante de una línea de pedido.
type LineKind string

const (
	LineProduct  LineKind = "product"  // referencia un producto del inventario
	LineFreeform LineKind = "freeform" // línea libre: solo aporta al total
)

// OrderLine línea de pedido (variante etiquetada).
// Product: ProductID, SelectedSizes (mayorista variable), Size (minorista
// variable) y Multiplier como snapshot del momento de la venta.
// Freeform: Name y QtyInPackage; nunca toca stock.
type OrderLine struct {
	Kind            LineKind        `json:"kind"`
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

// IsProduct indica si la línea referencia un producto del inventario.
func (l *OrderLine) IsProduct() bool {
	return l.Kind == LineProduct && l.ProductID != ""
}

// LineTotal cantidad × precio × (1 − descuento/100), sin redondear.
func (l *OrderLine) LineTotal() decimal.Decimal {
	qty := decimal.NewFromInt(int64(l.Quantity))
	factor := decimal.NewFromInt(1).Sub(l.DiscountPercent.Div(decimal.NewFromInt(100)))
	return qty.Mul(l.Price).Mul(factor)
}

// PaidEntry un abono registrado sobre el pedido.
type PaidEntry struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Order representa un pedido/documento de venta.
// Number es el consecutivo de 10 dígitos con ceros a la izquierda.
// Deleted es anulación lógica: el registro nunca se borra físicamente.
type Order struct {
	ID           string
	CompanyID    string
	CustomerID   string
	UserID       string
	Number       string
	Date         time.Time
	DocumentType string
	OrderType    string
	Lines        []OrderLine
	PaymentType  string
	PaidAmount   decimal.Decimal
	PaidHistory  []PaidEntry
	Total        decimal.Decimal
	Unpaid       bool
	Deleted      bool
	Receiver     string
	Sender       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockDirection sentido del efecto sobre stock de este documento:
// true = crédito (devuelve stock), false = débito (venta normal).
func (o *Order) StockDirectionCredit() bool {
	return o.DocumentType == DocumentCredit
}
