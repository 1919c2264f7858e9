package purchasing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

type purchasingFixture struct {
	uc        *purchasing.PurchaseOrderUseCase
	records   *memRecordRepo
	movements *memMovementRepo
	orders    *memPORepo
	runner    *memReceivingRunner
}

func newPurchasingFixture() *purchasingFixture {
	records := newMemRecordRepo()
	movements := &memMovementRepo{}
	orders := newMemPORepo()
	runner := &memReceivingRunner{records: records, movements: movements, orders: orders}
	products := newMemProductRepo(
		&entity.Product{ID: "prod-1", SKU: "SKU-1", Name: "Tornillo", IsActive: true},
		&entity.Product{ID: "prod-2", SKU: "SKU-2", Name: "Tuerca", IsActive: true},
	)
	suppliers := newMemSupplierRepo(
		&entity.Supplier{ID: "sup-1", Name: "Ferretería Industrial", IsActive: true},
		&entity.Supplier{ID: "sup-off", Name: "Cerrado", IsActive: false},
	)
	warehouses := newMemWarehouseRepo(
		&entity.Warehouse{ID: "wh-1", Code: "BOD1", IsActive: true},
	)
	return &purchasingFixture{
		uc:        purchasing.NewPurchaseOrderUseCase(runner, orders, products, suppliers, warehouses),
		records:   records,
		movements: movements,
		orders:    orders,
		runner:    runner,
	}
}

// createSentPO crea una orden de dos líneas (10 × prod-1, 5 × prod-2) y la
// avanza a sent, lista para recibir.
func createSentPO(t *testing.T, f *purchasingFixture) *entity.PurchaseOrder {
	t.Helper()
	po, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseOrderItemInput{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("100"), TaxRate: dec("19")},
			{ProductID: "prod-2", Quantity: dec("5"), UnitPrice: dec("200"), TaxRate: dec("0")},
		},
	})
	require.NoError(t, err)
	po, err = f.uc.UpdateStatus(context.Background(), po.ID, entity.POStatusSent)
	require.NoError(t, err)
	return po
}

func TestPOCreate_TotalesDerivados(t *testing.T) {
	f := newPurchasingFixture()

	po, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseOrderItemInput{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("100"), TaxRate: dec("19")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusDraft, po.Status)
	assert.Equal(t, "COP", po.Currency)
	assert.NotEmpty(t, po.Number)
	assert.True(t, po.Subtotal.Equal(dec("1000")))
	assert.True(t, po.TaxTotal.Equal(dec("190")))
	assert.True(t, po.GrandTotal.Equal(dec("1190")))
}

func TestPOCreate_CabeceraYLineasEnUnaTransaccion(t *testing.T) {
	f := newPurchasingFixture()

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseOrderItemInput{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("100")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.runner.runs, "la cabecera y sus líneas se insertan en una sola transacción")
}

func TestPOCreate_NumerosDistintos(t *testing.T) {
	f := newPurchasingFixture()

	req := dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseOrderItemInput{
			{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("100")},
		},
	}
	a, err := f.uc.Create(context.Background(), "u", req)
	require.NoError(t, err)
	b, err := f.uc.Create(context.Background(), "u", req)
	require.NoError(t, err)

	assert.NotEqual(t, a.Number, b.Number, "dos órdenes creadas en el mismo segundo no comparten número")
}

func TestPOCreate_ProveedorInactivoEsConflicto(t *testing.T) {
	f := newPurchasingFixture()

	_, err := f.uc.Create(context.Background(), "u", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-off",
		Items: []dto.PurchaseOrderItemInput{
			{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("100")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPOUpdateStatus_NoRetrocede(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), po.ID, entity.POStatusDraft)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.UpdateStatus(context.Background(), po.ID, entity.POStatusReceived)
	assert.ErrorIs(t, err, domain.ErrConflict, "received solo lo fija la recepción")

	_, err = f.uc.UpdateStatus(context.Background(), po.ID, entity.POStatusConfirmed)
	assert.NoError(t, err)
}

func TestPOCancel_RecepcionConcurrenteGanaElLock(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	// Una recepción completa hace commit mientras la cancelación espera el
	// lock de cabecera: al releer, la cancelación ve la orden recibida y se
	// rechaza en lugar de pisar el estado.
	f.runner.beforeTx = func() {
		_, err := f.uc.Receive(context.Background(), po.ID, "otro-usuario", dto.ReceivePORequest{
			WarehouseID: "wh-1",
			ReceivedItems: []dto.ReceivedItemInput{
				{ItemID: po.Items[0].ID, QuantityReceived: dec("10")},
				{ItemID: po.Items[1].ID, QuantityReceived: dec("5")},
			},
		})
		require.NoError(t, err)
	}

	_, err := f.uc.UpdateStatus(context.Background(), po.ID, entity.POStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, _ := f.orders.GetByID(po.ID)
	assert.Equal(t, entity.POStatusReceived, stored.Status,
		"la orden queda received, nunca cancelled con el stock ya ingresado")
	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("10")))
}

func TestReceive_ParcialConservaEstado(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	received, err := f.uc.Receive(context.Background(), po.ID, "user-1", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("4")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusSent, received.Status, "recepción parcial no cambia el estado")
	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("4")))

	stored, _ := f.orders.GetByID(po.ID)
	assert.True(t, stored.Items[0].QuantityReceived.Equal(dec("4")))
	assert.True(t, stored.Items[1].QuantityReceived.IsZero())

	require.Len(t, f.movements.movements, 1)
	m := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypePurchaseReceipt, m.MovementType)
	assert.Equal(t, entity.ReferenceTypePurchaseOrder, m.ReferenceType)
	assert.Equal(t, po.ID, m.ReferenceID)
	assert.Equal(t, "user-1", m.CreatedBy)
}

func TestReceive_CompletaAcumulandoParciales(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	_, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("6")},
			{ItemID: po.Items[1].ID, QuantityReceived: dec("5")},
		},
	})
	require.NoError(t, err)

	received, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("4")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusReceived, received.Status, "todas las líneas completas")
	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("10")))
	assert.True(t, f.records.onHand("prod-2", "wh-1").Equal(dec("5")))
}

func TestReceive_SobreRecepcionHaceRollbackTotal(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	// La primera línea es válida; la segunda excede lo pedido. Nada queda.
	_, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("10")},
			{ItemID: po.Items[1].ID, QuantityReceived: dec("6")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.records.onHand("prod-1", "wh-1").IsZero(), "rollback total")
	assert.Empty(t, f.movements.movements)
	stored, _ := f.orders.GetByID(po.ID)
	assert.True(t, stored.Items[0].QuantityReceived.IsZero())
	assert.Equal(t, entity.POStatusSent, stored.Status)
}

func TestReceive_AcumuladoNoExcedeLoPedido(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	_, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("8")},
		},
	})
	require.NoError(t, err)

	// Quedan 2 pendientes; recibir 3 debe rechazarse.
	_, err = f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("3")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("8")), "la primera recepción queda intacta")
}

func TestReceive_ConcurrentesSerializadasNoExceden(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	// Dos recepciones que juntas exceden lo pedido (8 + 3 sobre 10). La
	// primera hace commit mientras la segunda espera el lock de cabecera; la
	// segunda relee el acumulado ya commiteado y se rechaza.
	f.runner.beforeTx = func() {
		_, err := f.uc.Receive(context.Background(), po.ID, "otro-usuario", dto.ReceivePORequest{
			WarehouseID: "wh-1",
			ReceivedItems: []dto.ReceivedItemInput{
				{ItemID: po.Items[0].ID, QuantityReceived: dec("8")},
			},
		})
		require.NoError(t, err)
	}

	_, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("3")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.records.onHand("prod-1", "wh-1").Equal(dec("8")), "solo la recepción que ganó el lock cuenta")
	stored, _ := f.orders.GetByID(po.ID)
	assert.True(t, stored.Items[0].QuantityReceived.Equal(dec("8")))
	assert.Equal(t, entity.POStatusSent, stored.Status)
}

func TestReceive_SoloSobreOrdenesEnviadasOConfirmadas(t *testing.T) {
	f := newPurchasingFixture()

	po, err := f.uc.Create(context.Background(), "u", dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseOrderItemInput{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("100")},
		},
	})
	require.NoError(t, err)

	// draft no se recibe.
	_, err = f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// cancelled tampoco.
	_, err = f.uc.UpdateStatus(context.Background(), po.ID, entity.POStatusCancelled)
	require.NoError(t, err)
	_, err = f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReceive_CantidadNegativaEsInvalida(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	_, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: po.Items[0].ID, QuantityReceived: dec("-2")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_LineaDesconocida(t *testing.T) {
	f := newPurchasingFixture()
	po := createSentPO(t, f)

	_, err := f.uc.Receive(context.Background(), po.ID, "u", dto.ReceivePORequest{
		WarehouseID: "wh-1",
		ReceivedItems: []dto.ReceivedItemInput{
			{ItemID: "item-inexistente", QuantityReceived: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
