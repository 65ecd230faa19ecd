package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size una talla de un producto variable con su existencia propia.
type Size struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Product representa un producto del inventario. Quantity es la cantidad de
// paquetes; en productos variables se deriva de las tallas (ver stock.Refresh).
// El motor de pedidos solo muta los campos de existencia; el resto es CRUD.
type Product struct {
	ID             string
	CompanyID      string
	Code           string // código único por empresa
	Barcode        string
	Name           string
	Quantity       int // paquetes disponibles
	Multiplier     int // unidades por paquete (>= 1)
	Sizes          []Size
	OutOfStock     bool
	OpenedPackages bool
	WholesalePrice decimal.Decimal
	RetailPrice    decimal.Decimal
	DeliveryPrice  decimal.Decimal
	Deleted        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasSizes indica si el producto es variable (existencia por talla).
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// SizeByName devuelve la talla con ese nombre, o nil si no existe.
func (p *Product) SizeByName(name string) *Size {
	for i := range p.Sizes {
		if p.Sizes[i].Name == name {
			return &p.Sizes[i]
		}
	}
	return nil
}

// PackMultiplier devuelve el multiplicador garantizando mínimo 1.
func (p *Product) PackMultiplier() int {
	if p.Multiplier < 1 {
		return 1
	}
	return p.Multiplier
}

// Clone copia el producto (incluyendo tallas) para trabajar en memoria
// sin tocar el snapshot leído del store.
func (p *Product) Clone() *Product {
	cp := *p
	if p.Sizes != nil {
		cp.Sizes = make([]Size, len(p.Sizes))
		copy(cp.Sizes, p.Sizes)
	}
	return &cp
}
