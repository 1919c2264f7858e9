package inventory

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del motor de inventario:
// registro de existencias y ledger se escriben juntos o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// TransferTxRunner ejecuta el procesamiento de un traslado en una transacción
// que además ata el repositorio de traslados (el cambio de estado a completed
// debe hacer commit junto con los movimientos).
type TransferTxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error) error
}
