package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger de movimientos sobre PostgreSQL.
// Append-only: el adaptador no expone Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento en el ledger.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, quantity_delta,
			movement_type, reference_type, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.WarehouseID, movement.QuantityDelta,
		movement.MovementType, movement.ReferenceType, movement.ReferenceID,
		movement.Notes, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List lista movimientos con filtros, del más reciente al más antiguo.
func (r *StockMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		where += fmt.Sprintf(` AND warehouse_id = $%d`, len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where += fmt.Sprintf(` AND product_id = $%d`, len(args))
	}
	if filter.MovementType != "" {
		args = append(args, filter.MovementType)
		where += fmt.Sprintf(` AND movement_type = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	args = append(args, limit, offset)
	query := `
		SELECT id, product_id, warehouse_id, quantity_delta, movement_type,
			reference_type, reference_id, notes, created_by, created_at
		FROM stock_movements` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.WarehouseID, &m.QuantityDelta, &m.MovementType,
			&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
