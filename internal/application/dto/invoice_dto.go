package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest entrada para crear una factura (estado draft).
type CreateInvoiceRequest struct {
	Number     string             `json:"number"`
	CustomerID string             `json:"customer_id"`
	IssueDate  *time.Time         `json:"issue_date,omitempty"`
	DueDate    *time.Time         `json:"due_date,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Items      []InvoiceItemInput `json:"items"`
}

// UpdateInvoiceRequest entrada para actualizar una factura editable.
// Status solo admite el avance draft→sent; partial/paid se derivan de pagos.
type UpdateInvoiceRequest struct {
	DueDate *time.Time         `json:"due_date,omitempty"`
	Notes   *string            `json:"notes,omitempty"`
	Status  *string            `json:"status,omitempty"`
	Items   []InvoiceItemInput `json:"items,omitempty"`
}

// InvoiceItemInput línea de factura en creación/actualización.
type InvoiceItemInput struct {
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// RecordPaymentRequest body para POST /api/invoices/{id}/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

// InvoiceItemResponse línea de factura en respuestas.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// InvoiceResponse salida de una factura. TotalPaid y Balance se derivan de
// los pagos; Overdue es etiqueta de presentación (no almacenada).
type InvoiceResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	CustomerID string                `json:"customer_id"`
	Status     string                `json:"status"`
	IssueDate  time.Time             `json:"issue_date"`
	DueDate    *time.Time            `json:"due_date,omitempty"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	TaxTotal   decimal.Decimal       `json:"tax_total"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
	TotalPaid  decimal.Decimal       `json:"total_paid"`
	Balance    decimal.Decimal       `json:"balance"`
	Overdue    bool                  `json:"overdue"`
	Notes      string                `json:"notes,omitempty"`
	Items      []InvoiceItemResponse `json:"items"`
	Payments   []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}
