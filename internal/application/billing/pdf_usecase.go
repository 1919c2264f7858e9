package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF recupera la factura con sus líneas y pagos, resuelve los
// nombres de producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	payments, err := uc.invoiceRepo.ListPayments(inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pagos: %w", err)
	}

	productNames := make(map[string]string)
	for _, it := range inv.Items {
		if it.ProductID == "" {
			continue
		}
		if _, ok := productNames[it.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
		}
		if product != nil {
			productNames[it.ProductID] = product.Name
		}
	}

	data := InvoicePDFData{
		Invoice:      inv,
		Customer:     customer,
		Payments:     payments,
		ProductNames: productNames,
	}
	pdfBytes, err = uc.generator.Generate(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura-%s.pdf", inv.Number), nil
}
