package analytics

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen operativo de la pantalla inicial.
type DashboardUseCase struct {
	reports repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reports repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reports: reports}
}

// GetSummary devuelve los contadores del dashboard en una sola pasada.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	counters, err := uc.reports.GetDashboardCounters(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryDTO{
		ActiveProducts:     counters.ActiveProducts,
		LowStockProducts:   counters.LowStockProducts,
		OpenPurchaseOrders: counters.OpenPurchaseOrders,
		UnpaidInvoices:     counters.UnpaidInvoices,
		OutstandingAmount:  counters.OutstandingAmount,
		TodayReceipts:      counters.TodayReceipts,
	}, nil
}
