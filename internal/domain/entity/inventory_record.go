package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord representa el stock actual de un producto en una bodega.
// Se crea de forma perezosa con el primer movimiento y nunca se borra
// (cantidad cero es un estado válido). Invariante central: QuantityOnHand
// debe ser igual a la suma de los deltas de movimientos del par
// (producto, bodega).
type InventoryRecord struct {
	ProductID        string
	WarehouseID      string
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal
	UpdatedAt        time.Time
}

// Available devuelve la cantidad disponible para nuevos compromisos
// (on_hand − reserved). Nunca debe observarse negativa tras un commit.
func (r *InventoryRecord) Available() decimal.Decimal {
	return r.QuantityOnHand.Sub(r.QuantityReserved)
}
