package entity

import "time"

// Supplier representa un proveedor al que se emiten órdenes de compra.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación tributaria
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
