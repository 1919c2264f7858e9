package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// InventoryFilter filtros para el listado de existencias.
type InventoryFilter struct {
	WarehouseID string
	ProductID   string
}

// InventoryView fila de existencias con datos del producto para listados.
type InventoryView struct {
	Record      entity.InventoryRecord
	SKU         string
	ProductName string
	LowStock    bool // on_hand bajo el umbral de reposición del producto
}

// InventoryRecordRepository define el puerto para consultar/actualizar el
// registro de existencias por (producto, bodega). Las mutaciones se usan
// siempre dentro de una transacción para garantizar consistencia.
type InventoryRecordRepository interface {
	// Get devuelve el registro actual; si no existe, uno en cero (creación perezosa).
	Get(productID, warehouseID string) (*entity.InventoryRecord, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error
	List(filter InventoryFilter, limit, offset int) ([]*InventoryView, int, error)
}
