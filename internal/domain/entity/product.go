package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// El stock se maneja por bodega en InventoryRecord; aquí solo viven los
// datos comerciales y los umbrales de reposición.
type Product struct {
	ID              string
	SKU             string // código único
	Name            string
	Description     string
	UnitPrice       decimal.Decimal // precio de venta
	CostPrice       decimal.Decimal // costo de compra
	ReorderLevel    decimal.Decimal // umbral bajo el cual el SKU se marca en quiebre
	ReorderQuantity decimal.Decimal // cantidad sugerida de pedido
	IsActive        bool            // baja lógica; nunca se borra físicamente
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
