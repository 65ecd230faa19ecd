package entity

import "time"

// Company representa una organización/tenant del sistema.
// Senders acumula los nombres de emisores vistos en sus pedidos
// (append-if-absent, consistencia eventual).
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Senders   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSender indica si el nombre ya está en la lista de emisores.
func (c *Company) HasSender(name string) bool {
	for _, s := range c.Senders {
		if s == name {
			return true
		}
	}
	return false
}
