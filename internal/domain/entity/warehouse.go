package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
type Warehouse struct {
	ID        string
	Code      string // código único
	Name      string
	Address   string
	City      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
