package entity

import "time"

// Customer representa un cliente de la empresa.
// Receivers acumula los nombres de receptores vistos en sus pedidos
// (append-if-absent, consistencia eventual).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Receivers []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasReceiver indica si el nombre ya está en la lista de receptores.
func (c *Customer) HasReceiver(name string) bool {
	for _, r := range c.Receivers {
		if r == name {
			return true
		}
	}
	return false
}
