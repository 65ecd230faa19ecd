package dto

import "github.com/shopspring/decimal"

// SizeDTO talla con su existencia.
type SizeDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SaveProductRequest body para POST /api/products y PUT /api/products/:id.
type SaveProductRequest struct {
	Code           string          `json:"code"`
	Barcode        string          `json:"barcode,omitempty"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	Multiplier     int             `json:"multiplier"`
	Sizes          []SizeDTO       `json:"sizes,omitempty"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	DeliveryPrice  decimal.Decimal `json:"delivery_price"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Code           string    `json:"code"`
	Barcode        string    `json:"barcode,omitempty"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	Multiplier     int       `json:"multiplier"`
	Sizes          []SizeDTO `json:"sizes,omitempty"`
	OutOfStock     bool      `json:"out_of_stock"`
	OpenedPackages bool      `json:"opened_packages"`
	WholesalePrice string    `json:"wholesale_price"`
	RetailPrice    string    `json:"retail_price"`
	DeliveryPrice  string    `json:"delivery_price"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string   `json:"id"`
	CompanyID string   `json:"company_id"`
	Name      string   `json:"name"`
	TaxID     string   `json:"tax_id"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Receivers []string `json:"receivers,omitempty"`
}

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	TaxID   string   `json:"tax_id"`
	Address string   `json:"address,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Email   string   `json:"email,omitempty"`
	Senders []string `json:"senders,omitempty"`
}
