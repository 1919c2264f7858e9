package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockTransferRequest entrada para crear un traslado (estado pending).
type CreateStockTransferRequest struct {
	FromWarehouseID string                   `json:"from_warehouse_id"`
	ToWarehouseID   string                   `json:"to_warehouse_id"`
	Notes           string                   `json:"notes,omitempty"`
	Items           []StockTransferItemInput `json:"items"`
}

// StockTransferItemInput línea del traslado en creación.
type StockTransferItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StockTransferItemResponse línea del traslado en respuestas.
type StockTransferItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StockTransferResponse salida de un traslado.
type StockTransferResponse struct {
	ID              string                      `json:"id"`
	Number          string                      `json:"number"`
	FromWarehouseID string                      `json:"from_warehouse_id"`
	ToWarehouseID   string                      `json:"to_warehouse_id"`
	Status          string                      `json:"status"`
	Notes           string                      `json:"notes,omitempty"`
	Items           []StockTransferItemResponse `json:"items"`
	CompletedAt     *time.Time                  `json:"completed_at,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}
