package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen operativo para la pantalla inicial.
type DashboardSummaryDTO struct {
	ActiveProducts     int             `json:"active_products"`
	LowStockProducts   int             `json:"low_stock_products"`
	OpenPurchaseOrders int             `json:"open_purchase_orders"`
	UnpaidInvoices     int             `json:"unpaid_invoices"`
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"`
	TodayReceipts      int             `json:"today_receipts"`
}
