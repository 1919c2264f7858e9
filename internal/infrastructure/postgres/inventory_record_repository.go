package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación de InventoryRecordRepository sobre
// PostgreSQL (usable con pool o tx; las mutaciones siempre van en tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

func zeroRecord(productID, warehouseID string) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		QuantityOnHand:   decimal.Zero,
		QuantityReserved: decimal.Zero,
	}
}

// Get obtiene el registro de existencias; si no existe devuelve uno en cero
// (el registro se crea perezosamente con el primer movimiento).
func (r *InventoryRecordRepo) Get(productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity_on_hand, quantity_reserved, updated_at
		FROM inventory_records WHERE product_id = $1 AND warehouse_id = $2`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.QuantityOnHand, &rec.QuantityReserved, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroRecord(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Si la fila no existe todavía no hay nada que bloquear: el Upsert posterior
// la crea y el constraint (product_id, warehouse_id) serializa la carrera.
func (r *InventoryRecordRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity_on_hand, quantity_reserved, updated_at
		FROM inventory_records WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.QuantityOnHand, &rec.QuantityReserved, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroRecord(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza el registro de existencias (por producto y bodega).
func (r *InventoryRecordRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (product_id, warehouse_id, quantity_on_hand, quantity_reserved, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand,
			quantity_reserved = EXCLUDED.quantity_reserved, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.WarehouseID, record.QuantityOnHand, record.QuantityReserved)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// List lista existencias con datos del producto para la vista de niveles.
// low_stock se calcula contra el umbral de reposición del producto.
func (r *InventoryRecordRepo) List(filter repository.InventoryFilter, limit, offset int) ([]*repository.InventoryView, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		where += fmt.Sprintf(` AND ir.warehouse_id = $%d`, len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where += fmt.Sprintf(` AND ir.product_id = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM inventory_records ir` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory records: %w", err)
	}

	args = append(args, limit, offset)
	query := `
		SELECT ir.product_id, ir.warehouse_id, ir.quantity_on_hand, ir.quantity_reserved,
			ir.updated_at, p.sku, p.name, ir.quantity_on_hand < p.reorder_level AS low_stock
		FROM inventory_records ir
		JOIN products p ON p.id = ir.product_id` + where +
		fmt.Sprintf(` ORDER BY p.sku, ir.warehouse_id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()

	var list []*repository.InventoryView
	for rows.Next() {
		var v repository.InventoryView
		if err := rows.Scan(
			&v.Record.ProductID, &v.Record.WarehouseID, &v.Record.QuantityOnHand,
			&v.Record.QuantityReserved, &v.Record.UpdatedAt, &v.SKU, &v.ProductName, &v.LowStock,
		); err != nil {
			return nil, 0, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}
