package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// memInvoiceRepo fake en memoria de facturas y pagos.
type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	payments map[string][]*entity.Payment
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		payments: make(map[string][]*entity.Payment),
	}
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	copied := *inv
	copied.Items = make([]*entity.InvoiceItem, len(inv.Items))
	for i, it := range inv.Items {
		itemCopy := *it
		copied.Items[i] = &itemCopy
	}
	return &copied
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.invoices[id]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, nil
}

func (r *memInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	if stored, ok := r.invoices[inv.ID]; ok {
		items := stored.Items
		r.invoices[inv.ID] = cloneInvoice(inv)
		r.invoices[inv.ID].Items = items
	}
	return nil
}

func (r *memInvoiceRepo) ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error {
	if stored, ok := r.invoices[invoiceID]; ok {
		stored.Items = nil
		for _, it := range items {
			itemCopy := *it
			stored.Items = append(stored.Items, &itemCopy)
		}
	}
	return nil
}

func (r *memInvoiceRepo) List(filter repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	out := make([]*entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, cloneInvoice(inv))
	}
	return out, len(out), nil
}

func (r *memInvoiceRepo) CreatePayment(p *entity.Payment) error {
	copied := *p
	r.payments[p.InvoiceID] = append(r.payments[p.InvoiceID], &copied)
	return nil
}

func (r *memInvoiceRepo) ListPayments(invoiceID string) ([]*entity.Payment, error) {
	return r.payments[invoiceID], nil
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	r := &memCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) List(search string, limit, offset int) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error               { return nil }
func (r *memProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *memProductRepo) SetActive(id string, active bool) error { return nil }

// memBillingRunner pasa el fake directo; el estado solo se escribe si fn
// no falla, igual que una transacción real en los caminos cubiertos aquí.
// runs cuenta las transacciones ejecutadas.
type memBillingRunner struct {
	invoices *memInvoiceRepo
	runs     int
}

var _ appbilling.BillingTxRunner = (*memBillingRunner)(nil)

func (tr *memBillingRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tr.runs++
	return fn(tr.invoices)
}

type billingFixture struct {
	uc       *appbilling.InvoiceUseCase
	invoices *memInvoiceRepo
	runner   *memBillingRunner
}

func newBillingFixture() *billingFixture {
	invoices := newMemInvoiceRepo()
	customers := newMemCustomerRepo(
		&entity.Customer{ID: "cust-1", Name: "Distribuidora Andina"},
	)
	products := newMemProductRepo(
		&entity.Product{ID: "prod-1", Name: "Tornillo galvanizado", UnitPrice: dec("1500"), IsActive: true},
	)
	runner := &memBillingRunner{invoices: invoices}
	return &billingFixture{
		uc:       appbilling.NewInvoiceUseCase(runner, invoices, customers, products),
		invoices: invoices,
		runner:   runner,
	}
}

func createInvoice(t *testing.T, f *billingFixture) *dto.InvoiceResponse {
	t.Helper()
	inv, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:     "FV-001",
		CustomerID: "cust-1",
		Items: []dto.InvoiceItemInput{
			{Description: "Servicio de instalación", Quantity: dec("2"), UnitPrice: dec("50"), TaxRate: dec("10")},
		},
	})
	require.NoError(t, err)
	return inv
}

func TestInvoiceCreate_TotalesDerivadosDeLineas(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)

	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Subtotal.Equal(dec("100")))
	assert.True(t, inv.TaxTotal.Equal(dec("10")))
	assert.True(t, inv.GrandTotal.Equal(dec("110")))
	assert.True(t, inv.Balance.Equal(dec("110")))
}

func TestInvoiceCreate_LineaConProductoTomaNombreYPrecio(t *testing.T) {
	f := newBillingFixture()

	inv, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:     "FV-002",
		CustomerID: "cust-1",
		Items: []dto.InvoiceItemInput{
			// Sin descripción ni precio: se toman del producto.
			{ProductID: "prod-1", Quantity: dec("3"), TaxRate: dec("19")},
		},
	})
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Tornillo galvanizado", inv.Items[0].Description)
	assert.True(t, inv.Items[0].UnitPrice.Equal(dec("1500")))
	assert.True(t, inv.Subtotal.Equal(dec("4500")))
}

func TestInvoiceCreate_ClienteInexistente(t *testing.T) {
	f := newBillingFixture()

	_, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		Number:     "FV-003",
		CustomerID: "no-existe",
		Items: []dto.InvoiceItemInput{
			{Description: "x", Quantity: dec("1"), UnitPrice: dec("10")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_CreacionYEdicionSonTransaccionales(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)
	assert.Equal(t, 1, f.runner.runs, "cabecera y líneas se insertan en una sola transacción")

	_, err := f.uc.Update(context.Background(), inv.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemInput{
			{Description: "Mantenimiento", Quantity: dec("1"), UnitPrice: dec("300"), TaxRate: dec("0")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.runner.runs, "el reemplazo de líneas y los totales hacen commit juntos")
}

func TestInvoiceUpdate_ReemplazaLineasYRecalcula(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)

	updated, err := f.uc.Update(context.Background(), inv.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemInput{
			{Description: "Mantenimiento", Quantity: dec("1"), UnitPrice: dec("300"), TaxRate: dec("0")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Subtotal.Equal(dec("300")))
	assert.True(t, updated.TaxTotal.IsZero())
	assert.True(t, updated.GrandTotal.Equal(dec("300")))
}

func TestInvoiceUpdate_AvanceDraftASent(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)

	sent := entity.InvoiceStatusSent
	updated, err := f.uc.Update(context.Background(), inv.ID, dto.UpdateInvoiceRequest{Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, updated.Status)

	// sent→draft no existe.
	draft := entity.InvoiceStatusDraft
	_, err = f.uc.Update(context.Background(), inv.ID, dto.UpdateInvoiceRequest{Status: &draft})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecordPayment_ParcialYLuegoPagada(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f) // total 110

	after, err := f.uc.RecordPayment(context.Background(), inv.ID, "user-1", dto.RecordPaymentRequest{
		Amount: dec("50"),
		Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, after.Status)
	assert.True(t, after.TotalPaid.Equal(dec("50")))
	assert.True(t, after.Balance.Equal(dec("60")))

	after, err = f.uc.RecordPayment(context.Background(), inv.ID, "user-1", dto.RecordPaymentRequest{
		Amount: dec("60"),
		Method: "transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, after.Status)
	assert.True(t, after.Balance.IsZero())
	assert.Len(t, after.Payments, 2, "el historial conserva ambos pagos")
}

func TestRecordPayment_SobreDraftLaPromueveASent(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)

	after, err := f.uc.RecordPayment(context.Background(), inv.ID, "u", dto.RecordPaymentRequest{
		Amount: dec("10"),
	})
	require.NoError(t, err)
	// Un pago implica factura emitida: draft pasa por sent y deriva partial.
	assert.Equal(t, entity.InvoiceStatusPartial, after.Status)
}

func TestRecordPayment_MontoInvalido(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)

	_, err := f.uc.RecordPayment(context.Background(), inv.ID, "u", dto.RecordPaymentRequest{
		Amount: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordPayment(context.Background(), inv.ID, "u", dto.RecordPaymentRequest{
		Amount: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUpdate_CongeladaConPagos(t *testing.T) {
	f := newBillingFixture()
	inv := createInvoice(t, f)

	_, err := f.uc.RecordPayment(context.Background(), inv.ID, "u", dto.RecordPaymentRequest{
		Amount: dec("50"),
	})
	require.NoError(t, err)

	// Con pagos (partial) las líneas quedan congeladas.
	_, err = f.uc.Update(context.Background(), inv.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemInput{
			{Description: "otra cosa", Quantity: dec("1"), UnitPrice: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecordPayment_FacturaInexistente(t *testing.T) {
	f := newBillingFixture()

	_, err := f.uc.RecordPayment(context.Background(), "no-existe", "u", dto.RecordPaymentRequest{
		Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
