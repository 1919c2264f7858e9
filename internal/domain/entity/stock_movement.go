package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeAdjustment      = "adjustment"       // ajuste manual con motivo
	MovementTypePurchaseReceipt = "purchase_receipt" // recepción de orden de compra
	MovementTypeTransferIn      = "transfer_in"      // entrada por traslado
	MovementTypeTransferOut     = "transfer_out"     // salida por traslado
)

// Tipos de referencia a la operación que originó el movimiento.
const (
	ReferenceTypeAdjustment    = "adjustment"
	ReferenceTypePurchaseOrder = "purchase_order"
	ReferenceTypeStockTransfer = "stock_transfer"
)

// StockMovement es el registro inmutable de un delta de cantidad sobre
// (producto, bodega). El ledger es append-only: nunca se actualiza ni se
// borra un movimiento.
type StockMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	QuantityDelta decimal.Decimal // positivo entrada, negativo salida
	MovementType  string
	ReferenceType string
	ReferenceID   string // ID de la orden de compra, traslado o ajuste
	Notes         string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}
