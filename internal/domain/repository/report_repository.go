package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockItem fila del reporte de SKUs bajo punto de reorden.
type LowStockItem struct {
	ProductID       string
	SKU             string
	ProductName     string
	CurrentStock    decimal.Decimal
	ReorderLevel    decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// DashboardCounters contadores crudos para el resumen del dashboard.
type DashboardCounters struct {
	ActiveProducts     int
	LowStockProducts   int
	OpenPurchaseOrders int             // draft/sent/confirmed
	UnpaidInvoices     int             // estado distinto de paid
	OutstandingAmount  decimal.Decimal // Σ(total − pagos) de facturas no pagadas
	TodayReceipts      int             // movimientos purchase_receipt de hoy
}

// ReportRepository consultas read-only para reportes y dashboard.
type ReportRepository interface {
	// GetProductsBelowReorderLevel devuelve los productos activos cuyo stock
	// (en la bodega indicada, o agregado si warehouseID es vacío) está por
	// debajo de su reorder_level, ordenados por déficit descendente.
	GetProductsBelowReorderLevel(ctx context.Context, warehouseID string) ([]LowStockItem, error)
	GetDashboardCounters(ctx context.Context) (*DashboardCounters, error)
}
