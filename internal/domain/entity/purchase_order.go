package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Las transiciones solo avanzan
// (draft → sent → confirmed → received), salvo la cancelación.
const (
	POStatusDraft     = "draft"
	POStatusSent      = "sent"
	POStatusConfirmed = "confirmed"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// poStatusRank orden de avance de los estados no terminales.
var poStatusRank = map[string]int{
	POStatusDraft:     0,
	POStatusSent:      1,
	POStatusConfirmed: 2,
	POStatusReceived:  3,
}

// PurchaseOrder representa la cabecera de una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	Number       string // consecutivo único
	SupplierID   string
	Status       string
	Currency     string // código ISO 4217, ej: COP, USD
	OrderDate    time.Time
	ExpectedDate *time.Time
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	GrandTotal   decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []*PurchaseOrderItem
}

// PurchaseOrderItem es una línea de la orden: cantidad pedida y cuánto
// se ha recibido hasta ahora (recepciones parciales acumulan aquí).
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	Quantity         decimal.Decimal // cantidad pedida
	QuantityReceived decimal.Decimal // acumulado recibido; nunca excede Quantity
	UnitPrice        decimal.Decimal
	TaxRate          decimal.Decimal // porcentaje, ej: 19 = 19%
}

// Remaining devuelve la cantidad pendiente por recibir de la línea.
func (i *PurchaseOrderItem) Remaining() decimal.Decimal {
	return i.Quantity.Sub(i.QuantityReceived)
}

// CanTransitionTo indica si el cambio de estado es legal: solo hacia
// adelante, excepto cancelar desde cualquier estado no terminal.
// "received" no se asigna por esta vía; solo lo fija la recepción completa.
func (po *PurchaseOrder) CanTransitionTo(next string) bool {
	if po.Status == POStatusReceived || po.Status == POStatusCancelled {
		return false
	}
	if next == POStatusCancelled {
		return true
	}
	cur, okCur := poStatusRank[po.Status]
	nxt, okNxt := poStatusRank[next]
	if !okCur || !okNxt || next == POStatusReceived {
		return false
	}
	return nxt > cur
}

// FullyReceived indica si todas las líneas alcanzaron su cantidad pedida.
func (po *PurchaseOrder) FullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for _, it := range po.Items {
		if it.QuantityReceived.LessThan(it.Quantity) {
			return false
		}
	}
	return true
}
