package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

type adjustmentFixture struct {
	uc        *inventory.AdjustmentUseCase
	records   *memRecordRepo
	movements *memMovementRepo
}

func newAdjustmentFixture() *adjustmentFixture {
	records := newMemRecordRepo()
	movements := &memMovementRepo{}
	runner := &memTxRunner{records: records, movements: movements, transfers: newMemTransferRepo()}
	products := newMemProductRepo(
		&entity.Product{ID: "prod-1", SKU: "SKU-1", Name: "Tornillo", IsActive: true},
	)
	warehouses := newMemWarehouseRepo(
		&entity.Warehouse{ID: "wh-1", Code: "BOD1", Name: "Principal", IsActive: true},
		&entity.Warehouse{ID: "wh-off", Code: "BOD9", Name: "Cerrada", IsActive: false},
	)
	return &adjustmentFixture{
		uc:        inventory.NewAdjustmentUseCase(runner, products, warehouses),
		records:   records,
		movements: movements,
	}
}

func adjustReq(typ, qty string) dto.StockAdjustmentRequest {
	return dto.StockAdjustmentRequest{
		ProductID:      "prod-1",
		WarehouseID:    "wh-1",
		AdjustmentType: typ,
		Quantity:       dec(qty),
		Reason:         "conteo físico",
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAdjust_AddCreaRegistroYMovimiento(t *testing.T) {
	f := newAdjustmentFixture()

	err := f.uc.Adjust(context.Background(), "user-1", adjustReq(dto.AdjustmentTypeAdd, "10"))
	require.NoError(t, err)

	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("10")))
	require.Len(t, f.movements.movements, 1)
	m := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypeAdjustment, m.MovementType)
	assert.True(t, m.QuantityDelta.Equal(dec("10")))
	assert.Equal(t, "user-1", m.CreatedBy)
	assert.Contains(t, m.Notes, "conteo físico")
}

func TestAdjust_RemoveDescuentaStock(t *testing.T) {
	f := newAdjustmentFixture()
	seedStock(f.records, f.movements, "prod-1", "wh-1", dec("10"))

	err := f.uc.Adjust(context.Background(), "user-1", adjustReq(dto.AdjustmentTypeRemove, "4"))
	require.NoError(t, err)

	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("6")))
}

func TestAdjust_LedgerCoincideConOnHand(t *testing.T) {
	f := newAdjustmentFixture()

	require.NoError(t, f.uc.Adjust(context.Background(), "u", adjustReq(dto.AdjustmentTypeAdd, "10")))
	require.NoError(t, f.uc.Adjust(context.Background(), "u", adjustReq(dto.AdjustmentTypeRemove, "3")))
	require.NoError(t, f.uc.Adjust(context.Background(), "u", adjustReq(dto.AdjustmentTypeAdd, "1.5")))

	onHand := f.records.onHand("prod-1", "wh-1")
	assert.True(t, onHand.Equal(dec("8.5")), "on_hand: %s", onHand)
	assert.True(t, onHand.Equal(f.movements.sumDeltas("prod-1", "wh-1")),
		"el on_hand debe ser la suma de los deltas del ledger")
}

func TestAdjust_RemoveSinStockSuficiente(t *testing.T) {
	f := newAdjustmentFixture()
	seedStock(f.records, f.movements, "prod-1", "wh-1", dec("3"))

	err := f.uc.Adjust(context.Background(), "u", adjustReq(dto.AdjustmentTypeRemove, "5"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Available.Equal(dec("3")))
	assert.True(t, insufficientErr.Requested.Equal(dec("5")))

	// Rollback completo: ni el registro ni el ledger cambiaron.
	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("3")))
	assert.Len(t, f.movements.movements, 1, "solo el movimiento de seed")
}

func TestAdjust_RemoveRespetaReservado(t *testing.T) {
	f := newAdjustmentFixture()
	_ = f.records.Upsert(&entity.InventoryRecord{
		ProductID:        "prod-1",
		WarehouseID:      "wh-1",
		QuantityOnHand:   dec("10"),
		QuantityReserved: dec("8"),
	})

	// on_hand alcanza pero el disponible (10-8=2) no.
	err := f.uc.Adjust(context.Background(), "u", adjustReq(dto.AdjustmentTypeRemove, "5"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAdjust_ValidaEntrada(t *testing.T) {
	f := newAdjustmentFixture()

	cases := map[string]dto.StockAdjustmentRequest{
		"sin producto":      {WarehouseID: "wh-1", AdjustmentType: dto.AdjustmentTypeAdd, Quantity: dec("1"), Reason: "x"},
		"sin bodega":        {ProductID: "prod-1", AdjustmentType: dto.AdjustmentTypeAdd, Quantity: dec("1"), Reason: "x"},
		"cantidad cero":     adjustReq(dto.AdjustmentTypeAdd, "0"),
		"cantidad negativa": adjustReq(dto.AdjustmentTypeAdd, "-2"),
		"tipo desconocido":  adjustReq("set", "1"),
		"sin motivo": {
			ProductID: "prod-1", WarehouseID: "wh-1",
			AdjustmentType: dto.AdjustmentTypeAdd, Quantity: dec("1"), Reason: "   ",
		},
	}
	for name, req := range cases {
		err := f.uc.Adjust(context.Background(), "u", req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Empty(t, f.movements.movements, "ninguna validación fallida debe escribir movimientos")
}

func TestAdjust_ProductoOBodegaInexistente(t *testing.T) {
	f := newAdjustmentFixture()

	req := adjustReq(dto.AdjustmentTypeAdd, "1")
	req.ProductID = "no-existe"
	assert.ErrorIs(t, f.uc.Adjust(context.Background(), "u", req), domain.ErrNotFound)

	req = adjustReq(dto.AdjustmentTypeAdd, "1")
	req.WarehouseID = "no-existe"
	assert.ErrorIs(t, f.uc.Adjust(context.Background(), "u", req), domain.ErrNotFound)
}

func TestAdjust_BodegaInactivaEsConflicto(t *testing.T) {
	f := newAdjustmentFixture()

	req := adjustReq(dto.AdjustmentTypeAdd, "1")
	req.WarehouseID = "wh-off"
	err := f.uc.Adjust(context.Background(), "u", req)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
