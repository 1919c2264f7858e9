package entity

import "time"

// Customer representa un cliente al que se facturan ventas.
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación tributaria
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
