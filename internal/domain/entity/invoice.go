package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. partial/paid se derivan de los pagos acumulados
// frente al total; "overdue" es una etiqueta de presentación, no un estado
// almacenado.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Invoice representa la cabecera de una factura de venta.
// Subtotal/TaxTotal/GrandTotal se derivan siempre de las líneas.
type Invoice struct {
	ID         string
	Number     string // consecutivo único
	CustomerID string
	Status     string
	IssueDate  time.Time
	DueDate    *time.Time
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []*InvoiceItem
}

// InvoiceItem representa una línea de detalle de una factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string // opcional: líneas libres sin producto asociado
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje, ej: 19 = 19%
	Subtotal    decimal.Decimal // Quantity × UnitPrice, sin impuesto
}

// Payment representa un pago aplicado a una factura.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string // cash, transfer, card, other
	PaidAt    time.Time
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// IsOverdue indica si la factura está vencida (etiqueta derivada para la UI).
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.DueDate != nil && inv.DueDate.Before(now) && inv.Status != InvoiceStatusPaid
}

// Editable indica si la factura admite cambios de líneas: con pagos
// registrados (partial/paid) la factura queda congelada.
func (inv *Invoice) Editable() bool {
	return inv.Status == InvoiceStatusDraft || inv.Status == InvoiceStatusSent
}
