package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TransferUseCase gestiona traslados entre bodegas en dos fases: crear
// (pending, sin tocar inventario) y procesar (completed, mutación atómica
// de ambas bodegas). Cancelar solo es legal antes de procesar.
type TransferUseCase struct {
	txRunner      TransferTxRunner
	transferRepo  repository.StockTransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TransferTxRunner,
	transferRepo repository.StockTransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create registra el traslado en estado pending. Origen y destino deben
// diferir (se rechaza con ErrConflict antes de cualquier escritura) y todas
// las líneas deben referenciar productos existentes con cantidad positiva.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateStockTransferRequest) (*entity.StockTransfer, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrConflict
	}

	for _, whID := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		if !wh.IsActive {
			return nil, domain.ErrConflict
		}
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ID:              uuid.New().String(),
		Number:          fmt.Sprintf("TR-%d", now.UnixNano()),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.TransferStatusPending,
		Notes:           in.Notes,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		transfer.Items = append(transfer.Items, &entity.StockTransferItem{
			ID:              uuid.New().String(),
			StockTransferID: transfer.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
		})
	}

	// Cabecera y líneas hacen commit juntas: un fallo a mitad de las líneas
	// no puede dejar un traslado pendiente incompleto que Process ejecutaría.
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.InventoryRecordRepository,
		_ repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// Process ejecuta el traslado: en una sola transacción verifica por línea que
// el disponible en origen alcance (si no, InsufficientStockError y rollback
// total — todo o nada), aplica -cantidad en origen (transfer_out) y +cantidad
// en destino (transfer_in), y marca el traslado como completed.
func (uc *TransferUseCase) Process(ctx context.Context, transferID, userID string) (*entity.StockTransfer, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}

	var processed *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanProcess() {
			return domain.ErrConflict
		}

		now := time.Now()
		for _, item := range transfer.Items {
			// Bloquea la fila de origen y verifica disponible antes de mutar.
			origin, err := recordRepo.GetForUpdate(item.ProductID, transfer.FromWarehouseID)
			if err != nil {
				return err
			}
			if origin.Available().LessThan(item.Quantity) {
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					WarehouseID: transfer.FromWarehouseID,
					OnHand:      origin.QuantityOnHand,
					Available:   origin.Available(),
					Requested:   item.Quantity,
				}
			}
			if err := ApplyDelta(recordRepo, movementRepo, ApplyDeltaInput{
				ProductID:     item.ProductID,
				WarehouseID:   transfer.FromWarehouseID,
				Delta:         item.Quantity.Neg(),
				MovementType:  entity.MovementTypeTransferOut,
				ReferenceType: entity.ReferenceTypeStockTransfer,
				ReferenceID:   transfer.ID,
				UserID:        userID,
				Now:           now,
			}); err != nil {
				return err
			}
			if err := ApplyDelta(recordRepo, movementRepo, ApplyDeltaInput{
				ProductID:     item.ProductID,
				WarehouseID:   transfer.ToWarehouseID,
				Delta:         item.Quantity,
				MovementType:  entity.MovementTypeTransferIn,
				ReferenceType: entity.ReferenceTypeStockTransfer,
				ReferenceID:   transfer.ID,
				UserID:        userID,
				Now:           now,
			}); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusCompleted
		transfer.CompletedAt = &now
		transfer.UpdatedAt = now
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}
		processed = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return processed, nil
}

// Cancel marca el traslado como cancelled. Solo es legal desde draft/pending
// y no realiza ninguna mutación de inventario (nada se aplicó aún). La
// cabecera se bloquea en la misma transacción que el cambio de estado: un
// Process concurrente que haga commit primero deja el traslado en completed
// y esta cancelación lo ve y se rechaza, nunca al revés.
func (uc *TransferUseCase) Cancel(ctx context.Context, transferID string) (*entity.StockTransfer, error) {
	var cancelled *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.InventoryRecordRepository,
		_ repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanCancel() {
			return domain.ErrConflict
		}

		transfer.Status = entity.TransferStatusCancelled
		transfer.UpdatedAt = time.Now()
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}
		cancelled = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// GetByID obtiene un traslado con sus líneas.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*entity.StockTransfer, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List lista traslados con filtros y paginación.
func (uc *TransferUseCase) List(ctx context.Context, filter repository.StockTransferFilter, limit, offset int) ([]*entity.StockTransfer, int, error) {
	return uc.transferRepo.List(filter, limit, offset)
}
