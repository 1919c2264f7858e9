package purchasing_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Fakes en memoria para el ciclo de compras. El runner emula rollback con
// snapshot/restore sobre existencias, ledger y órdenes.

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

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

func (r *memRecordRepo) onHand(productID, warehouseID string) decimal.Decimal {
	return r.records[recordKey(productID, warehouseID)].QuantityOnHand
}

func (r *memRecordRepo) snapshot() map[string]entity.InventoryRecord {
	snap := make(map[string]entity.InventoryRecord, len(r.records))
	for k, v := range r.records {
		snap[k] = v
	}
	return snap
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

type memPORepo struct {
	orders map[string]*entity.PurchaseOrder
}

func newMemPORepo() *memPORepo {
	return &memPORepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func clonePO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	copied := *po
	copied.Items = make([]*entity.PurchaseOrderItem, len(po.Items))
	for i, it := range po.Items {
		itemCopy := *it
		copied.Items[i] = &itemCopy
	}
	return &copied
}

func (r *memPORepo) Create(po *entity.PurchaseOrder) error {
	r.orders[po.ID] = clonePO(po)
	return nil
}

func (r *memPORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if po, ok := r.orders[id]; ok {
		return clonePO(po), nil
	}
	return nil, nil
}

func (r *memPORepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *memPORepo) Update(po *entity.PurchaseOrder) error {
	if _, ok := r.orders[po.ID]; ok {
		r.orders[po.ID] = clonePO(po)
	}
	return nil
}

func (r *memPORepo) UpdateStatus(id, status string) error {
	if po, ok := r.orders[id]; ok {
		po.Status = status
	}
	return nil
}

func (r *memPORepo) UpdateItemReceived(itemID string, quantityReceived decimal.Decimal) error {
	for _, po := range r.orders {
		for _, it := range po.Items {
			if it.ID == itemID {
				it.QuantityReceived = quantityReceived
				return nil
			}
		}
	}
	return nil
}

func (r *memPORepo) List(filter repository.PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	out := make([]*entity.PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		out = append(out, clonePO(po))
	}
	return out, len(out), nil
}

func (r *memPORepo) snapshot() map[string]*entity.PurchaseOrder {
	snap := make(map[string]*entity.PurchaseOrder, len(r.orders))
	for k, v := range r.orders {
		snap[k] = clonePO(v)
	}
	return snap
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newMemSupplierRepo(suppliers ...*entity.Supplier) *memSupplierRepo {
	r := &memSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
	for _, s := range suppliers {
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) List(search string, limit, offset int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}
func (r *memSupplierRepo) SetActive(id string, active bool) error {
	if s, ok := r.suppliers[id]; ok {
		s.IsActive = active
	}
	return nil
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

// memReceivingRunner ejecuta el fn con rollback por snapshot/restore. beforeTx
// emula la espera del lock de cabecera: la operación concurrente hace commit
// antes de que esta transacción tome su snapshot. runs cuenta las
// transacciones ejecutadas.
type memReceivingRunner struct {
	records   *memRecordRepo
	movements *memMovementRepo
	orders    *memPORepo
	runs      int
	beforeTx  func()
}

var _ purchasing.ReceivingTxRunner = (*memReceivingRunner)(nil)

func (tr *memReceivingRunner) RunReceiving(ctx context.Context, fn func(
	recordRepo repository.InventoryRecordRepository,
	movementRepo repository.StockMovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	tr.runs++
	if hook := tr.beforeTx; hook != nil {
		tr.beforeTx = nil
		hook()
	}
	recSnap := tr.records.snapshot()
	movSnap := len(tr.movements.movements)
	poSnap := tr.orders.snapshot()
	if err := fn(tr.records, tr.movements, tr.orders); err != nil {
		tr.records.records = recSnap
		tr.movements.movements = tr.movements.movements[:movSnap]
		tr.orders.orders = poSnap
		return err
	}
	return nil
}
