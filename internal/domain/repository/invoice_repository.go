package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	Status     string
	CustomerID string
	Search     string // busca en número y notas
}

// InvoiceRepository define el puerto de persistencia para facturas y pagos.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate carga cabecera y líneas bloqueando la cabecera; se usa al
	// registrar pagos para que el estado derivado no corra contra otro pago.
	GetForUpdate(id string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	// ReplaceItems borra y reinserta las líneas (solo facturas editables).
	ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error
	List(filter InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error)

	CreatePayment(payment *entity.Payment) error
	ListPayments(invoiceID string) ([]*entity.Payment, error)
}
