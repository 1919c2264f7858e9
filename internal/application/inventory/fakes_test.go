package inventory_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de inventario. El runner de
// transacciones emula rollback con snapshot/restore: si fn falla, el estado
// de todos los fakes vuelve al del inicio, igual que un ROLLBACK real.

func recordKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

type memRecordRepo struct {
	records map[string]entity.InventoryRecord
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[string]entity.InventoryRecord)}
}

func (r *memRecordRepo) Get(productID, warehouseID string) (*entity.InventoryRecord, error) {
	if rec, ok := r.records[recordKey(productID, warehouseID)]; ok {
		copied := rec
		return &copied, nil
	}
	return &entity.InventoryRecord{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *memRecordRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryRecord, error) {
	return r.Get(productID, warehouseID)
}

func (r *memRecordRepo) Upsert(record *entity.InventoryRecord) error {
	r.records[recordKey(record.ProductID, record.WarehouseID)] = *record
	return nil
}

func (r *memRecordRepo) List(filter repository.InventoryFilter, limit, offset int) ([]*repository.InventoryView, int, error) {
	return nil, 0, nil
}

func (r *memRecordRepo) snapshot() map[string]entity.InventoryRecord {
	snap := make(map[string]entity.InventoryRecord, len(r.records))
	for k, v := range r.records {
		snap[k] = v
	}
	return snap
}

func (r *memRecordRepo) onHand(productID, warehouseID string) decimal.Decimal {
	return r.records[recordKey(productID, warehouseID)].QuantityOnHand
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	return r.movements, len(r.movements), nil
}

// sumDeltas suma los deltas del ledger para un par (producto, bodega);
// debe coincidir siempre con el on_hand del registro de existencias.
func (r *memMovementRepo) sumDeltas(productID, warehouseID string) decimal.Decimal {
	var sum decimal.Decimal
	for _, m := range r.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.QuantityDelta)
		}
	}
	return sum
}

type memTransferRepo struct {
	transfers map[string]*entity.StockTransfer
}

func newMemTransferRepo() *memTransferRepo {
	return &memTransferRepo{transfers: make(map[string]*entity.StockTransfer)}
}

func cloneTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	copied := *t
	copied.Items = make([]*entity.StockTransferItem, len(t.Items))
	for i, it := range t.Items {
		itemCopy := *it
		copied.Items[i] = &itemCopy
	}
	return &copied
}

func (r *memTransferRepo) Create(t *entity.StockTransfer) error {
	r.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	if t, ok := r.transfers[id]; ok {
		return cloneTransfer(t), nil
	}
	return nil, nil
}

func (r *memTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}

func (r *memTransferRepo) UpdateStatus(t *entity.StockTransfer) error {
	stored, ok := r.transfers[t.ID]
	if !ok {
		return nil
	}
	stored.Status = t.Status
	stored.CompletedAt = t.CompletedAt
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *memTransferRepo) List(filter repository.StockTransferFilter, limit, offset int) ([]*entity.StockTransfer, int, error) {
	out := make([]*entity.StockTransfer, 0, len(r.transfers))
	for _, t := range r.transfers {
		out = append(out, cloneTransfer(t))
	}
	return out, len(out), nil
}

func (r *memTransferRepo) snapshot() map[string]*entity.StockTransfer {
	snap := make(map[string]*entity.StockTransfer, len(r.transfers))
	for k, v := range r.transfers {
		snap[k] = cloneTransfer(v)
	}
	return snap
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
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *memProductRepo) SetActive(id string, active bool) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newMemWarehouseRepo(warehouses ...*entity.Warehouse) *memWarehouseRepo {
	r := &memWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}
func (r *memWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}
func (r *memWarehouseRepo) Update(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, int, error) {
	return nil, 0, nil
}
func (r *memWarehouseRepo) SetActive(id string, active bool) error {
	if w, ok := r.warehouses[id]; ok {
		w.IsActive = active
	}
	return nil
}

// memTxRunner implementa los runners de inventario sobre los fakes, con
// semántica de rollback por snapshot/restore. beforeTx emula la espera del
// lock de cabecera: la operación concurrente hace commit antes de que esta
// transacción tome su snapshot. runs cuenta las transacciones ejecutadas.
type memTxRunner struct {
	records   *memRecordRepo
	movements *memMovementRepo
	transfers *memTransferRepo
	runs      int
	beforeTx  func()
}

func (tr *memTxRunner) begin() {
	tr.runs++
	if hook := tr.beforeTx; hook != nil {
		tr.beforeTx = nil
		hook()
	}
}

var (
	_ inventory.TxRunner         = (*memTxRunner)(nil)
	_ inventory.TransferTxRunner = (*memTxRunner)(nil)
)

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.InventoryRecordRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tr.begin()
	recSnap := tr.records.snapshot()
	movSnap := len(tr.movements.movements)
	if err := fn(tr.records, tr.movements); err != nil {
		tr.records.records = recSnap
		tr.movements.movements = tr.movements.movements[:movSnap]
		return err
	}
	return nil
}

func (tr *memTxRunner) RunTransfer(ctx context.Context, fn func(
	recordRepo repository.InventoryRecordRepository,
	movementRepo repository.StockMovementRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	tr.begin()
	recSnap := tr.records.snapshot()
	movSnap := len(tr.movements.movements)
	trSnap := tr.transfers.snapshot()
	if err := fn(tr.records, tr.movements, tr.transfers); err != nil {
		tr.records.records = recSnap
		tr.movements.movements = tr.movements.movements[:movSnap]
		tr.transfers.transfers = trSnap
		return err
	}
	return nil
}

// seedStock deja on_hand inicial para un par (producto, bodega) con su
// movimiento de ajuste correspondiente, manteniendo el ledger consistente.
func seedStock(records *memRecordRepo, movements *memMovementRepo, productID, warehouseID string, qty decimal.Decimal) {
	_ = records.Upsert(&entity.InventoryRecord{
		ProductID:      productID,
		WarehouseID:    warehouseID,
		QuantityOnHand: qty,
		UpdatedAt:      time.Now(),
	})
	_ = movements.Create(&entity.StockMovement{
		ID:            "seed-" + recordKey(productID, warehouseID),
		ProductID:     productID,
		WarehouseID:   warehouseID,
		QuantityDelta: qty,
		MovementType:  entity.MovementTypeAdjustment,
		ReferenceType: entity.ReferenceTypeAdjustment,
		CreatedAt:     time.Now(),
	})
}
