package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Receive registra una recepción (parcial o total) de la orden contra una
// bodega destino. Todo ocurre en una sola transacción: por cada línea con
// cantidad > 0 se valida que acumulado + recibido ahora no exceda lo pedido
// (si excede, rollback completo), se aplica el delta de inventario
// (purchase_receipt) y se avanza el acumulado de la línea. Al final la orden
// pasa a received solo si todas las líneas quedaron completas; una recepción
// parcial conserva el estado actual.
//
// La cabecera de la orden se bloquea con SELECT FOR UPDATE, de modo que dos
// recepciones concurrentes sobre la misma orden se serializan y no pueden
// sobre-recibir en conjunto.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, poID, userID string, in dto.ReceivePORequest) (*entity.PurchaseOrder, error) {
	if poID == "" || in.WarehouseID == "" || len(in.ReceivedItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if !warehouse.IsActive {
		return nil, domain.ErrConflict
	}

	var received *entity.PurchaseOrder
	err = uc.txRunner.RunReceiving(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		po, err := orderRepo.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		// Solo se recibe sobre órdenes enviadas o confirmadas.
		if po.Status != entity.POStatusSent && po.Status != entity.POStatusConfirmed {
			return domain.ErrConflict
		}

		itemsByID := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
		for _, it := range po.Items {
			itemsByID[it.ID] = it
		}

		now := time.Now()
		for _, line := range in.ReceivedItems {
			if line.QuantityReceived.IsZero() {
				continue
			}
			if line.QuantityReceived.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			item, ok := itemsByID[line.ItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if line.QuantityReceived.GreaterThan(item.Remaining()) {
				return fmt.Errorf("línea %s: recibido excede lo pendiente (%s > %s): %w",
					item.ID, line.QuantityReceived.String(), item.Remaining().String(), domain.ErrInvalidInput)
			}

			if err := inventory.ApplyDelta(recordRepo, movementRepo, inventory.ApplyDeltaInput{
				ProductID:     item.ProductID,
				WarehouseID:   in.WarehouseID,
				Delta:         line.QuantityReceived,
				MovementType:  entity.MovementTypePurchaseReceipt,
				ReferenceType: entity.ReferenceTypePurchaseOrder,
				ReferenceID:   po.ID,
				UserID:        userID,
				Now:           now,
			}); err != nil {
				return err
			}

			item.QuantityReceived = item.QuantityReceived.Add(line.QuantityReceived)
			if err := orderRepo.UpdateItemReceived(item.ID, item.QuantityReceived); err != nil {
				return err
			}
		}

		if po.FullyReceived() {
			if err := orderRepo.UpdateStatus(po.ID, entity.POStatusReceived); err != nil {
				return err
			}
			po.Status = entity.POStatusReceived
		}
		received = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}
