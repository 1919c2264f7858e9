package purchasing

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ReceivingTxRunner ejecuta la recepción de una orden de compra en una
// transacción que ata los repositorios de inventario y de órdenes: los
// deltas de stock y el avance de las líneas hacen commit juntos.
type ReceivingTxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
