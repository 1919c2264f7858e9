package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ApplyDeltaInput describe un delta de inventario con su metadato de movimiento.
type ApplyDeltaInput struct {
	ProductID     string
	WarehouseID   string
	Delta         decimal.Decimal // positivo entrada, negativo salida
	MovementType  string
	ReferenceType string
	ReferenceID   string
	Notes         string
	UserID        string
	Now           time.Time
}

// ApplyDelta aplica un delta sobre (producto, bodega) usando los repositorios
// de la transacción del caller: bloquea la fila de existencias (SELECT FOR
// UPDATE, fila en cero si no existe), rechaza salidas que dejarían el
// disponible negativo y escribe el registro actualizado más exactamente un
// movimiento en el ledger. Nunca es observable una aplicación parcial: ambas
// escrituras comparten la tx del caller.
func ApplyDelta(
	recordRepo repository.InventoryRecordRepository,
	movementRepo repository.StockMovementRepository,
	in ApplyDeltaInput,
) error {
	if in.ProductID == "" || in.WarehouseID == "" || in.Delta.IsZero() {
		return domain.ErrInvalidInput
	}

	record, err := recordRepo.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}

	if in.Delta.LessThan(decimal.Zero) {
		// El disponible (on_hand − reserved) nunca puede quedar negativo;
		// como reserved ≥ 0, esto cubre también el on_hand.
		if record.Available().Add(in.Delta).LessThan(decimal.Zero) {
			return &domain.InsufficientStockError{
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				OnHand:      record.QuantityOnHand,
				Available:   record.Available(),
				Requested:   in.Delta.Neg(),
			}
		}
	}

	record.QuantityOnHand = record.QuantityOnHand.Add(in.Delta)
	record.UpdatedAt = in.Now
	if err := recordRepo.Upsert(record); err != nil {
		return err
	}

	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		QuantityDelta: in.Delta,
		MovementType:  in.MovementType,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		CreatedBy:     in.UserID,
		CreatedAt:     in.Now,
	}
	return movementRepo.Create(movement)
}
