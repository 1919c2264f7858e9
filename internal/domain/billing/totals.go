// Package billing contiene los servicios de dominio puros de facturación:
// cálculo de totales y derivación del estado de pago.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// paymentEpsilon tolerancia para comparaciones de montos en moneda:
// un pago que quede a menos de 0.01 del total cuenta como pago completo.
var paymentEpsilon = decimal.NewFromFloat(0.01)

// Totals agrupa los totales derivados de las líneas de una factura.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals deriva subtotal, impuesto y total desde las líneas.
// subtotal = Σ(cantidad × precio); impuesto = Σ(subtotal_línea × tasa/100).
// Función pura: se usa idéntica en creación y actualización.
func ComputeTotals(items []*entity.InvoiceItem) Totals {
	hundred := decimal.NewFromInt(100)
	var t Totals
	for _, it := range items {
		lineSubtotal := it.Quantity.Mul(it.UnitPrice)
		t.Subtotal = t.Subtotal.Add(lineSubtotal)
		t.TaxTotal = t.TaxTotal.Add(lineSubtotal.Mul(it.TaxRate).Div(hundred))
	}
	t.GrandTotal = t.Subtotal.Add(t.TaxTotal)
	return t
}

// ResolveStatus deriva el estado de la factura desde los pagos acumulados.
// paid si totalPaid ≥ total (con tolerancia de centavos), partial si
// 0 < totalPaid < total; sin pagos se conserva el estado actual (draft/sent).
func ResolveStatus(current string, grandTotal, totalPaid decimal.Decimal) string {
	if totalPaid.LessThanOrEqual(decimal.Zero) {
		return current
	}
	if grandTotal.Sub(totalPaid).LessThanOrEqual(paymentEpsilon) {
		return entity.InvoiceStatusPaid
	}
	return entity.InvoiceStatusPartial
}

// SumPayments suma los montos de una lista de pagos.
func SumPayments(payments []*entity.Payment) decimal.Decimal {
	var sum decimal.Decimal
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}
