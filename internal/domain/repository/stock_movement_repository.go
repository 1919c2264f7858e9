package repository

import (
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// MovementFilter filtros del listado del ledger de movimientos.
type MovementFilter struct {
	WarehouseID  string
	ProductID    string
	MovementType string
	From         *time.Time
	To           *time.Time
}

// StockMovementRepository define el puerto de persistencia del ledger.
// Append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
}
