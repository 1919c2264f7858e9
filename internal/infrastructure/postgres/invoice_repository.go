package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, customer_id, status, issue_date, due_date,
	subtotal, tax_total, grand_total, notes, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.Status, &inv.IssueDate,
		&inv.DueDate, &inv.Subtotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste la cabecera y las líneas de una factura nueva.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	query := `
		INSERT INTO invoices (id, number, customer_id, status, issue_date, due_date,
			subtotal, tax_total, grand_total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Number, invoice.CustomerID, invoice.Status,
		invoice.IssueDate, invoice.DueDate, invoice.Subtotal, invoice.TaxTotal,
		invoice.GrandTotal, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(ctx, invoice.Items)
}

func (r *InvoiceRepo) insertItems(ctx context.Context, items []*entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, description,
			quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query,
			it.ID, it.InvoiceID, it.ProductID, it.Description,
			it.Quantity, it.UnitPrice, it.TaxRate, it.Subtotal,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, COALESCE(product_id, ''), description, quantity,
			unit_price, tax_rate, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *InvoiceRepo) getByID(id string, forUpdate bool) (*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.Items, err = r.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID carga cabecera y líneas de una factura.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.getByID(id, false)
}

// GetForUpdate carga la factura bloqueando la cabecera: dos pagos simultáneos
// sobre la misma factura recalculan el estado en serie.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.getByID(id, true)
}

// Update actualiza la cabecera de una factura existente.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, due_date = $3, subtotal = $4,
			tax_total = $5, grand_total = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Status, invoice.DueDate, invoice.Subtotal,
		invoice.TaxTotal, invoice.GrandTotal, invoice.Notes, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ReplaceItems borra y reinserta las líneas (solo para facturas editables;
// la regla la valida el caso de uso).
func (r *InvoiceRepo) ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return r.insertItems(ctx, items)
}

// List lista facturas (solo cabeceras) con filtros y paginación.
func (r *InvoiceRepo) List(filter repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(` AND customer_id = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (number ILIKE $%d OR notes ILIKE $%d)`, len(args), len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where +
		fmt.Sprintf(` ORDER BY issue_date DESC, number DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// CreatePayment inserta un pago aplicado a una factura.
func (r *InvoiceRepo) CreatePayment(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, method, paid_at, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.Amount, payment.Method,
		payment.PaidAt, payment.Notes, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments lista los pagos de una factura, del más antiguo al más reciente.
func (r *InvoiceRepo) ListPayments(invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, paid_at, notes, created_by, created_at
		FROM payments WHERE invoice_id = $1 ORDER BY paid_at, created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method,
			&p.PaidAt, &p.Notes, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
