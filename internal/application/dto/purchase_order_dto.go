package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest entrada para crear una orden de compra (estado draft).
type CreatePurchaseOrderRequest struct {
	SupplierID   string                   `json:"supplier_id"`
	Currency     string                   `json:"currency"`
	OrderDate    *time.Time               `json:"order_date,omitempty"`
	ExpectedDate *time.Time               `json:"expected_date,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	Items        []PurchaseOrderItemInput `json:"items"`
}

// PurchaseOrderItemInput línea de la orden en creación.
type PurchaseOrderItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

// UpdatePOStatusRequest cambio de estado (draft→sent→confirmed, o cancelled).
type UpdatePOStatusRequest struct {
	Status string `json:"status"`
}

// ReceivePORequest body para POST /api/purchase-orders/{id}/receive.
type ReceivePORequest struct {
	WarehouseID   string              `json:"warehouse_id"`
	ReceivedItems []ReceivedItemInput `json:"received_items"`
}

// ReceivedItemInput cantidad recibida ahora para una línea de la orden.
type ReceivedItemInput struct {
	ItemID           string          `json:"item_id"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// PurchaseOrderItemResponse línea de la orden en respuestas.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	Number       string                      `json:"number"`
	SupplierID   string                      `json:"supplier_id"`
	Status       string                      `json:"status"`
	Currency     string                      `json:"currency"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	Subtotal     decimal.Decimal             `json:"subtotal"`
	TaxTotal     decimal.Decimal             `json:"tax_total"`
	GrandTotal   decimal.Decimal             `json:"grand_total"`
	Notes        string                      `json:"notes,omitempty"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}
