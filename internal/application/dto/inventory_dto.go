package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste manual.
const (
	AdjustmentTypeAdd    = "add"
	AdjustmentTypeRemove = "remove"
)

// StockAdjustmentRequest body para POST /api/stock-adjustments.
// Reason es obligatorio; Notes es texto libre opcional.
type StockAdjustmentRequest struct {
	WarehouseID    string          `json:"warehouse_id"`
	ProductID      string          `json:"product_id"`
	AdjustmentType string          `json:"adjustment_type"` // add | remove
	Quantity       decimal.Decimal `json:"quantity"`        // siempre positiva
	Reason         string          `json:"reason"`
	Notes          string          `json:"notes,omitempty"`
}

// InventoryRecordResponse fila de existencias con el disponible derivado.
type InventoryRecordResponse struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	WarehouseID       string          `json:"warehouse_id"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	QuantityReserved  decimal.Decimal `json:"quantity_reserved"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	LowStock          bool            `json:"low_stock"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockMovementResponse fila del ledger de movimientos.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	MovementType  string          `json:"movement_type"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LowStockItemResponse fila del reporte de reposición.
type LowStockItemResponse struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
}
