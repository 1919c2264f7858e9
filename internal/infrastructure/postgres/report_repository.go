package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only para reportes y dashboard sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetProductsBelowReorderLevel devuelve los productos activos cuyo stock está
// por debajo de su umbral de reposición, ordenados por déficit descendente.
// Con warehouseID vacío agrega sobre todas las bodegas; los productos sin
// registro de existencias cuentan como stock cero.
func (r *ReportRepo) GetProductsBelowReorderLevel(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	args := []any{}
	warehouseCond := ``
	if warehouseID != "" {
		args = append(args, warehouseID)
		warehouseCond = ` AND ir.warehouse_id = $1`
	}
	query := `
		SELECT p.id, p.sku, p.name,
			COALESCE(SUM(ir.quantity_on_hand), 0) AS current_stock,
			p.reorder_level, p.reorder_quantity
		FROM products p
		LEFT JOIN inventory_records ir ON ir.product_id = p.id` + warehouseCond + `
		WHERE p.is_active AND p.reorder_level > 0
		GROUP BY p.id, p.sku, p.name, p.reorder_level, p.reorder_quantity
		HAVING COALESCE(SUM(ir.quantity_on_hand), 0) < p.reorder_level
		ORDER BY p.reorder_level - COALESCE(SUM(ir.quantity_on_hand), 0) DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName,
			&it.CurrentStock, &it.ReorderLevel, &it.ReorderQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetDashboardCounters junta los contadores del dashboard en una sola consulta.
func (r *ReportRepo) GetDashboardCounters(ctx context.Context) (*repository.DashboardCounters, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active),
			(SELECT COUNT(*) FROM (
				SELECT p.id FROM products p
				LEFT JOIN inventory_records ir ON ir.product_id = p.id
				WHERE p.is_active AND p.reorder_level > 0
				GROUP BY p.id, p.reorder_level
				HAVING COALESCE(SUM(ir.quantity_on_hand), 0) < p.reorder_level
			) low),
			(SELECT COUNT(*) FROM purchase_orders WHERE status IN ($1, $2, $3)),
			(SELECT COUNT(*) FROM invoices WHERE status <> $4),
			(SELECT COALESCE(SUM(i.grand_total - COALESCE(paid.total, 0)), 0)
				FROM invoices i
				LEFT JOIN (
					SELECT invoice_id, SUM(amount) AS total FROM payments GROUP BY invoice_id
				) paid ON paid.invoice_id = i.id
				WHERE i.status <> $4),
			(SELECT COUNT(*) FROM stock_movements
				WHERE movement_type = $5 AND created_at >= date_trunc('day', now()))`
	var c repository.DashboardCounters
	err := r.q.QueryRow(ctx, query,
		entity.POStatusDraft, entity.POStatusSent, entity.POStatusConfirmed,
		entity.InvoiceStatusPaid, entity.MovementTypePurchaseReceipt,
	).Scan(
		&c.ActiveProducts, &c.LowStockProducts, &c.OpenPurchaseOrders,
		&c.UnpaidInvoices, &c.OutstandingAmount, &c.TodayReceipts,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}
	return &c, nil
}
