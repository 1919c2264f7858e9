package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// AdjustmentUseCase registra ajustes manuales de inventario (add/remove) con
// motivo obligatorio, de forma transaccional.
type AdjustmentUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Adjust valida el request y aplica un único delta con tipo adjustment.
// Un remove que dejaría el stock negativo retorna InsufficientStockError con
// el on_hand actual, para que la UI muestre el motivo del rechazo.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, userID string, in dto.StockAdjustmentRequest) error {
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Reason) == "" {
		return domain.ErrInvalidInput
	}

	var delta decimal.Decimal
	switch in.AdjustmentType {
	case dto.AdjustmentTypeAdd:
		delta = in.Quantity
	case dto.AdjustmentTypeRemove:
		delta = in.Quantity.Neg()
	default:
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if !warehouse.IsActive {
		return domain.ErrConflict
	}

	notes := strings.TrimSpace(in.Reason)
	if in.Notes != "" {
		notes += " — " + in.Notes
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		return ApplyDelta(recordRepo, movementRepo, ApplyDeltaInput{
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			Delta:         delta,
			MovementType:  entity.MovementTypeAdjustment,
			ReferenceType: entity.ReferenceTypeAdjustment,
			Notes:         notes,
			UserID:        userID,
			Now:           now,
		})
	})
}
