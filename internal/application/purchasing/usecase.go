package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PurchaseOrderUseCase gestiona el ciclo de vida de órdenes de compra:
// creación, avance de estado (solo hacia adelante), cancelación y recepción.
type PurchaseOrderUseCase struct {
	txRunner      ReceivingTxRunner
	orderRepo     repository.PurchaseOrderRepository
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner ReceivingTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create registra una orden en estado draft con sus líneas y totales.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if !supplier.IsActive {
		return nil, domain.ErrConflict
	}

	currency := in.Currency
	if currency == "" {
		currency = "COP"
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		Number:       fmt.Sprintf("OC-%d", now.UnixNano()),
		SupplierID:   in.SupplierID,
		Status:       entity.POStatusDraft,
		Currency:     currency,
		OrderDate:    orderDate,
		ExpectedDate: in.ExpectedDate,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	hundred := decimal.NewFromInt(100)
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lineSubtotal := item.Quantity.Mul(item.UnitPrice)
		po.Subtotal = po.Subtotal.Add(lineSubtotal)
		po.TaxTotal = po.TaxTotal.Add(lineSubtotal.Mul(item.TaxRate).Div(hundred))
		po.Items = append(po.Items, &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TaxRate:         item.TaxRate,
		})
	}
	po.GrandTotal = po.Subtotal.Add(po.TaxTotal)

	// Cabecera y líneas hacen commit juntas.
	err = uc.txRunner.RunReceiving(ctx, func(
		_ repository.InventoryRecordRepository,
		_ repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		return orderRepo.Create(po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// UpdateStatus avanza el estado de la orden. Las transiciones solo van hacia
// adelante (draft→sent→confirmed); cancelled es válido desde cualquier estado
// no terminal; received solo lo fija la recepción completa, nunca esta vía.
// La cabecera se bloquea junto con el cambio de estado: una cancelación que
// corra contra una recepción concurrente lee el estado ya commiteado y no
// puede dejar una orden recibida marcada como cancelada.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.PurchaseOrder, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunReceiving(ctx, func(
		_ repository.InventoryRecordRepository,
		_ repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		po, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !po.CanTransitionTo(status) {
			return domain.ErrConflict
		}
		if err := orderRepo.UpdateStatus(po.ID, status); err != nil {
			return err
		}
		po.Status = status
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// List lista órdenes con filtros y paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, filter repository.PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	return uc.orderRepo.List(filter, limit, offset)
}
