package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado de stock. El inventario solo se muta al completar;
// cancelar desde draft/pending no toca ninguna bodega.
const (
	TransferStatusDraft     = "draft"
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in_transit"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// StockTransfer representa un traslado de inventario entre dos bodegas.
// Invariante: FromWarehouseID ≠ ToWarehouseID.
type StockTransfer struct {
	ID              string
	Number          string // consecutivo único
	FromWarehouseID string
	ToWarehouseID   string
	Status          string
	Notes           string
	CreatedBy       string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []*StockTransferItem
}

// StockTransferItem es una línea del traslado.
type StockTransferItem struct {
	ID              string
	StockTransferID string
	ProductID       string
	Quantity        decimal.Decimal // siempre positiva
}

// CanProcess indica si el traslado puede ejecutarse (mutar inventario).
func (t *StockTransfer) CanProcess() bool {
	switch t.Status {
	case TransferStatusDraft, TransferStatusPending, TransferStatusInTransit:
		return true
	}
	return false
}

// CanCancel indica si el traslado puede cancelarse sin efectos de inventario.
func (t *StockTransfer) CanCancel() bool {
	return t.Status == TransferStatusDraft || t.Status == TransferStatusPending
}
