package billing

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con el
// repositorio de facturas atado a esa tx. Registrar un pago y recalcular el
// estado de la factura deben hacer commit juntos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
// Lo implementa infrastructure/pdf con maroto.
type InvoicePDFGenerator interface {
	Generate(ctx context.Context, data InvoicePDFData) ([]byte, error)
}

// InvoicePDFData datos resueltos necesarios para renderizar el PDF.
type InvoicePDFData struct {
	Invoice      *entity.Invoice
	Customer     *entity.Customer
	Payments     []*entity.Payment
	ProductNames map[string]string // ProductID → nombre, para las líneas con producto
}
