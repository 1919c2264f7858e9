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

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `id, number, from_warehouse_id, to_warehouse_id, status,
	notes, created_by, completed_at, created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := row.Scan(
		&t.ID, &t.Number, &t.FromWarehouseID, &t.ToWarehouseID, &t.Status,
		&t.Notes, &t.CreatedBy, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste la cabecera y las líneas de un traslado nuevo.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO stock_transfers (id, number, from_warehouse_id, to_warehouse_id,
			status, notes, created_by, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.Number, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Status, transfer.Notes, transfer.CreatedBy, transfer.CompletedAt,
		transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO stock_transfer_items (id, stock_transfer_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, it := range transfer.Items {
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.StockTransferID, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("insert stock transfer item: %w", err)
		}
	}
	return nil
}

func (r *StockTransferRepo) loadItems(ctx context.Context, transferID string) ([]*entity.StockTransferItem, error) {
	query := `
		SELECT id, stock_transfer_id, product_id, quantity
		FROM stock_transfer_items WHERE stock_transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list stock transfer items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockTransferItem
	for rows.Next() {
		var it entity.StockTransferItem
		if err := rows.Scan(&it.ID, &it.StockTransferID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock transfer item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *StockTransferRepo) getByID(id string, forUpdate bool) (*entity.StockTransfer, error) {
	ctx := context.Background()
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	t.Items, err = r.loadItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID carga cabecera y líneas de un traslado.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	return r.getByID(id, false)
}

// GetForUpdate carga el traslado bloqueando la cabecera: procesar y cancelar
// el mismo traslado no compiten.
func (r *StockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.getByID(id, true)
}

// UpdateStatus fija estado y completed_at del traslado.
func (r *StockTransferRepo) UpdateStatus(transfer *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers SET status = $2, completed_at = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, transfer.CompletedAt, transfer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock transfer status: %w", err)
	}
	return nil
}

// List lista traslados (solo cabeceras) con filtros y paginación.
func (r *StockTransferRepo) List(filter repository.StockTransferFilter, limit, offset int) ([]*entity.StockTransfer, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.FromWarehouseID != "" {
		args = append(args, filter.FromWarehouseID)
		where += fmt.Sprintf(` AND from_warehouse_id = $%d`, len(args))
	}
	if filter.ToWarehouseID != "" {
		args = append(args, filter.ToWarehouseID)
		where += fmt.Sprintf(` AND to_warehouse_id = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_transfers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock transfers: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + transferColumns + ` FROM stock_transfers` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}
