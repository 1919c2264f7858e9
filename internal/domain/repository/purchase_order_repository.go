package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// PurchaseOrderFilter filtros del listado de órdenes de compra.
type PurchaseOrderFilter struct {
	Status     string
	SupplierID string
	Search     string // busca en número y notas
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra. GetForUpdate bloquea la cabecera para serializar recepciones
// concurrentes sobre la misma orden.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate carga cabecera y líneas bloqueando la fila de cabecera
	// (SELECT FOR UPDATE); dos recepciones simultáneas no pueden sobre-recibir.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
	UpdateStatus(id, status string) error
	// UpdateItemReceived fija el acumulado recibido de una línea.
	UpdateItemReceived(itemID string, quantityReceived decimal.Decimal) error
	List(filter PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error)
}
