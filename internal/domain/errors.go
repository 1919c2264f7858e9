package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError lleva las cantidades actuales para que el caller
// pueda mostrar el motivo del rechazo (ej: "disponible 3, solicitado 5").
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	OnHand      decimal.Decimal
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s (producto %s, bodega %s)",
		e.Available.String(), e.Requested.String(), e.ProductID, e.WarehouseID)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
