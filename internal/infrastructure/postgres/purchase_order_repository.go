package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, number, supplier_id, status, currency, order_date, expected_date,
	subtotal, tax_total, grand_total, notes, created_by, created_at, updated_at`

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(
		&po.ID, &po.Number, &po.SupplierID, &po.Status, &po.Currency,
		&po.OrderDate, &po.ExpectedDate, &po.Subtotal, &po.TaxTotal,
		&po.GrandTotal, &po.Notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Create persiste la cabecera y las líneas de una orden nueva.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (id, number, supplier_id, status, currency,
			order_date, expected_date, subtotal, tax_total, grand_total, notes,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.Number, po.SupplierID, po.Status, po.Currency,
		po.OrderDate, po.ExpectedDate, po.Subtotal, po.TaxTotal, po.GrandTotal,
		po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id,
			quantity, quantity_received, unit_price, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range po.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.PurchaseOrderID, it.ProductID, it.Quantity,
			it.QuantityReceived, it.UnitPrice, it.TaxRate,
		); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, product_id, quantity, quantity_received, unit_price, tax_rate
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID,
			&it.Quantity, &it.QuantityReceived, &it.UnitPrice, &it.TaxRate,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *PurchaseOrderRepo) getByID(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	po, err := scanPO(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Items, err = r.loadItems(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	return po, nil
}

// GetByID carga cabecera y líneas de una orden.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getByID(id, false)
}

// GetForUpdate carga la orden bloqueando la fila de cabecera (SELECT FOR
// UPDATE): dos recepciones simultáneas sobre la misma orden se serializan.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getByID(id, true)
}

// Update actualiza la cabecera de una orden existente.
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET status = $2, currency = $3, expected_date = $4,
			subtotal = $5, tax_total = $6, grand_total = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.Status, po.Currency, po.ExpectedDate,
		po.Subtotal, po.TaxTotal, po.GrandTotal, po.Notes, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// UpdateStatus fija el estado de una orden.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// UpdateItemReceived fija el acumulado recibido de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, quantityReceived decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`,
		itemID, quantityReceived)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	return nil
}

// List lista órdenes (solo cabeceras) con filtros y paginación.
func (r *PurchaseOrderRepo) List(filter repository.PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		where += fmt.Sprintf(` AND supplier_id = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (number ILIKE $%d OR notes ILIKE $%d)`, len(args), len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM purchase_orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + poColumns + ` FROM purchase_orders` + where +
		fmt.Sprintf(` ORDER BY order_date DESC, number DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, total, rows.Err()
}
