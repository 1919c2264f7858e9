package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	domainbilling "github.com/jhoicas/Gestion-api/internal/domain/billing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// InvoiceUseCase crea y actualiza facturas (totales siempre derivados de las
// líneas) y registra pagos recalculando el estado en la misma transacción.
// Una operación canónica por caso de uso: sin métodos alias.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// buildItems valida las líneas del request y las convierte a entidades con
// su subtotal calculado. Si una línea referencia producto, debe existir; el
// precio en cero toma el precio de lista del producto.
func (uc *InvoiceUseCase) buildItems(invoiceID string, inputs []dto.InvoiceItemInput) ([]*entity.InvoiceItem, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]*entity.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) || in.TaxRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		description := in.Description
		unitPrice := in.UnitPrice
		if in.ProductID != "" {
			product, err := uc.productRepo.GetByID(in.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			if description == "" {
				description = product.Name
			}
			if unitPrice.IsZero() {
				unitPrice = product.UnitPrice
			}
		}
		if description == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			ProductID:   in.ProductID,
			Description: description,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			TaxRate:     in.TaxRate,
			Subtotal:    in.Quantity.Mul(unitPrice),
		})
	}
	return items, nil
}

// Create registra una factura en estado draft con totales derivados.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Number == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	issueDate := now
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}

	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		Number:     in.Number,
		CustomerID: in.CustomerID,
		Status:     entity.InvoiceStatusDraft,
		IssueDate:  issueDate,
		DueDate:    in.DueDate,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	items, err := uc.buildItems(invoice.ID, in.Items)
	if err != nil {
		return nil, err
	}
	invoice.Items = items

	totals := domainbilling.ComputeTotals(items)
	invoice.Subtotal = totals.Subtotal
	invoice.TaxTotal = totals.TaxTotal
	invoice.GrandTotal = totals.GrandTotal

	// Cabecera y líneas hacen commit juntas: los totales almacenados siempre
	// corresponden a las líneas persistidas.
	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, nil), nil
}

// Update modifica una factura editable (draft/sent). Si cambian las líneas se
// reemplazan y los totales se recalculan con la misma función que en Create.
// Status solo admite el avance draft→sent. Todo ocurre en una transacción con
// la cabecera bloqueada: el reemplazo de líneas y los nuevos totales hacen
// commit juntos, y un pago concurrente no puede congelar la factura a mitad.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var (
		updated  *entity.Invoice
		payments []*entity.Payment
	)
	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		invoice, err := invoiceRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if !invoice.Editable() {
			return domain.ErrConflict
		}

		if in.Status != nil {
			if *in.Status != entity.InvoiceStatusSent || invoice.Status != entity.InvoiceStatusDraft {
				return domain.ErrConflict
			}
			invoice.Status = entity.InvoiceStatusSent
		}
		if in.DueDate != nil {
			invoice.DueDate = in.DueDate
		}
		if in.Notes != nil {
			invoice.Notes = *in.Notes
		}
		if len(in.Items) > 0 {
			items, err := uc.buildItems(invoice.ID, in.Items)
			if err != nil {
				return err
			}
			invoice.Items = items
			totals := domainbilling.ComputeTotals(items)
			invoice.Subtotal = totals.Subtotal
			invoice.TaxTotal = totals.TaxTotal
			invoice.GrandTotal = totals.GrandTotal
			if err := invoiceRepo.ReplaceItems(invoice.ID, items); err != nil {
				return err
			}
		}
		invoice.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(invoice); err != nil {
			return err
		}

		payments, err = invoiceRepo.ListPayments(invoice.ID)
		if err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated, payments), nil
}

// RecordPayment inserta el pago y recalcula el estado de la factura dentro de
// la MISMA transacción, con la cabecera bloqueada: dos pagos concurrentes no
// pueden derivar un estado inconsistente.
func (uc *InvoiceUseCase) RecordPayment(ctx context.Context, invoiceID, userID string, in dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var (
		updated  *entity.Invoice
		payments []*entity.Payment
	)
	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		invoice, err := invoiceRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status == entity.InvoiceStatusDraft {
			// Un pago sobre un draft implica que la factura ya fue emitida.
			invoice.Status = entity.InvoiceStatusSent
		}

		now := time.Now()
		paidAt := now
		if in.PaidAt != nil {
			paidAt = *in.PaidAt
		}
		payment := &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: invoice.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			PaidAt:    paidAt,
			Notes:     in.Notes,
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := invoiceRepo.CreatePayment(payment); err != nil {
			return err
		}

		payments, err = invoiceRepo.ListPayments(invoice.ID)
		if err != nil {
			return err
		}
		invoice.Status = domainbilling.ResolveStatus(invoice.Status, invoice.GrandTotal, domainbilling.SumPayments(payments))
		invoice.UpdatedAt = now
		if err := invoiceRepo.Update(invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated, payments), nil
}

// GetByID obtiene una factura con líneas y pagos.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.invoiceRepo.ListPayments(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, payments), nil
}

// List lista facturas con filtros y paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, filter repository.InvoiceFilter, page dto.PageRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	invoices, total, err := uc.invoiceRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		// En listados no se cargan pagos por factura; TotalPaid va en cero y
		// el detalle completo se obtiene por ID.
		items = append(items, *uc.toResponse(inv, nil))
	}
	return &dto.ListResponse[dto.InvoiceResponse]{
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	}, nil
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, payments []*entity.Payment) *dto.InvoiceResponse {
	totalPaid := domainbilling.SumPayments(payments)
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		CustomerID: inv.CustomerID,
		Status:     inv.Status,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Subtotal:   inv.Subtotal,
		TaxTotal:   inv.TaxTotal,
		GrandTotal: inv.GrandTotal,
		TotalPaid:  totalPaid,
		Balance:    inv.GrandTotal.Sub(totalPaid),
		Overdue:    inv.IsOverdue(time.Now()),
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			Amount:    p.Amount,
			Method:    p.Method,
			PaidAt:    p.PaidAt,
			Notes:     p.Notes,
			CreatedAt: p.CreatedAt,
		})
	}
	return resp
}
