package inventory

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// QueryUseCase consultas read-only de inventario: existencias actuales,
// ledger de movimientos y reporte de reposición.
type QueryUseCase struct {
	recordRepo   repository.InventoryRecordRepository
	movementRepo repository.StockMovementRepository
	reportRepo   repository.ReportRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	recordRepo repository.InventoryRecordRepository,
	movementRepo repository.StockMovementRepository,
	reportRepo repository.ReportRepository,
) *QueryUseCase {
	return &QueryUseCase{
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
		reportRepo:   reportRepo,
	}
}

// Levels devuelve las existencias actuales con el disponible derivado.
func (uc *QueryUseCase) Levels(ctx context.Context, filter repository.InventoryFilter, page dto.PageRequest) (*dto.ListResponse[dto.InventoryRecordResponse], error) {
	views, total, err := uc.recordRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRecordResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.InventoryRecordResponse{
			ProductID:         v.Record.ProductID,
			SKU:               v.SKU,
			ProductName:       v.ProductName,
			WarehouseID:       v.Record.WarehouseID,
			QuantityOnHand:    v.Record.QuantityOnHand,
			QuantityReserved:  v.Record.QuantityReserved,
			QuantityAvailable: v.Record.Available(),
			LowStock:          v.LowStock,
			UpdatedAt:         v.Record.UpdatedAt,
		})
	}
	return &dto.ListResponse[dto.InventoryRecordResponse]{
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	}, nil
}

// Movements devuelve el ledger filtrado y paginado (solo lectura; el ledger
// es append-only y nunca se edita).
func (uc *QueryUseCase) Movements(ctx context.Context, filter repository.MovementFilter, page dto.PageRequest) (*dto.ListResponse[dto.StockMovementResponse], error) {
	movements, total, err := uc.movementRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.StockMovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			QuantityDelta: m.QuantityDelta,
			MovementType:  m.MovementType,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Notes:         m.Notes,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.ListResponse[dto.StockMovementResponse]{
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	}, nil
}

// LowStock devuelve los SKUs bajo punto de reorden con la cantidad sugerida
// de pedido: reorder_quantity del producto, o el déficit si no está definida.
func (uc *QueryUseCase) LowStock(ctx context.Context, warehouseID string) ([]dto.LowStockItemResponse, error) {
	rows, err := uc.reportRepo.GetProductsBelowReorderLevel(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemResponse, 0, len(rows))
	for _, r := range rows {
		suggested := r.ReorderQuantity
		if suggested.IsZero() {
			suggested = r.ReorderLevel.Sub(r.CurrentStock)
		}
		items = append(items, dto.LowStockItemResponse{
			ProductID:         r.ProductID,
			SKU:               r.SKU,
			ProductName:       r.ProductName,
			CurrentStock:      r.CurrentStock,
			ReorderLevel:      r.ReorderLevel,
			SuggestedOrderQty: suggested,
		})
	}
	return items, nil
}
