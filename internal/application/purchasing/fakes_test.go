package purchasing_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos que toca el ciclo de compras. Entregan
// copias para imitar una BD real.
// ──────────────────────────────────────────────────────────────────────────────

type memItemRepo struct {
	items map[string]*entity.InventoryItem
}

var _ repository.ItemRepository = (*memItemRepo)(nil)

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func copyItem(it *entity.InventoryItem) *entity.InventoryItem {
	cp := *it
	if it.AverageCost != nil {
		v := *it.AverageCost
		cp.AverageCost = &v
	}
	if it.LastPurchasePrice != nil {
		v := *it.LastPurchasePrice
		cp.LastPurchasePrice = &v
	}
	return &cp
}

func (r *memItemRepo) Create(item *entity.InventoryItem) error {
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return copyItem(it), nil
}

func (r *memItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			return copyItem(it), nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) Update(item *entity.InventoryItem) error {
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItemRepo) UpdateStock(item *entity.InventoryItem) error {
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, copyItem(it))
	}
	return out, nil
}

func (r *memItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.IsLowStock() {
			out = append(out, copyItem(it))
		}
	}
	return out, nil
}

func (r *memItemRepo) Snapshot(id string) (*entity.ItemSnapshot, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &entity.ItemSnapshot{Item: *copyItem(it)}, nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memTrxRepo struct {
	trxs []*entity.InventoryTransaction
}

var _ repository.TransactionRepository = (*memTrxRepo)(nil)

func (r *memTrxRepo) Create(trx *entity.InventoryTransaction) error {
	cp := *trx
	r.trxs = append(r.trxs, &cp)
	return nil
}

func (r *memTrxRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	for _, t := range r.trxs {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTrxRepo) ListByItem(itemID string, limit int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for i := len(r.trxs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.trxs[i].ItemID == itemID {
			cp := *r.trxs[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTrxRepo) CountByItem(itemID string) (int, error) {
	count := 0
	for _, t := range r.trxs {
		if t.ItemID == itemID {
			count++
		}
	}
	return count, nil
}

func (r *memTrxRepo) ListRecent(limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for i := len(r.trxs) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		cp := *r.trxs[i]
		out = append(out, &cp)
	}
	return out, nil
}

type memOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
	seq    int64
}

var _ repository.PurchaseOrderRepository = (*memOrderRepo)(nil)

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	if o.ExpectedDate != nil {
		v := *o.ExpectedDate
		cp.ExpectedDate = &v
	}
	if o.ReceivedDate != nil {
		v := *o.ReceivedDate
		cp.ReceivedDate = &v
	}
	return &cp
}

func (r *memOrderRepo) NextOrderNumber() (string, error) {
	r.seq++
	return fmt.Sprintf("OC-%06d", r.seq), nil
}

func (r *memOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *memOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

// UpdateDraft imita la condición de estado del UPDATE real: solo reescribe
// órdenes que siguen en DRAFT.
func (r *memOrderRepo) UpdateDraft(order *entity.PurchaseOrder) error {
	stored, ok := r.orders[order.ID]
	if !ok || !stored.IsDraft() {
		return domain.ErrInvalidState
	}
	r.orders[order.ID] = copyOrder(order)
	return nil
}

// UpdateStatus imita la condición de estado del UPDATE real: COMPLETED es
// terminal y nunca se sobreescribe.
func (r *memOrderRepo) UpdateStatus(orderID, status string, receivedDate *time.Time) error {
	o, ok := r.orders[orderID]
	if !ok || o.Status == entity.OrderStatusCompleted {
		return domain.ErrInvalidState
	}
	o.Status = status
	if receivedDate != nil {
		v := *receivedDate
		o.ReceivedDate = &v
	}
	return nil
}

func (r *memOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

// staleOrderRepo devuelve en la lectura bloqueada una copia que todavía
// aparece en DRAFT, imitando una transacción cuya lectura ocurrió antes de que
// otra confirmara la finalización. Las escrituras van contra el almacén real.
type staleOrderRepo struct {
	*memOrderRepo
	staleID string
}

func (r *staleOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	o, err := r.memOrderRepo.GetByIDForUpdate(id)
	if err != nil || o == nil {
		return o, err
	}
	if o.ID == r.staleID {
		o.Status = entity.OrderStatusDraft
	}
	return o, nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

var _ repository.SupplierRepository = (*memSupplierRepo)(nil)

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSupplierRepo) Delete(id string) error {
	delete(r.suppliers, id)
	return nil
}

// memRunner entrega los repositorios en memoria a la función. Implementa los
// puertos transaccionales de inventario y de compras. orderRepo es la interfaz
// para poder inyectar dobles con lecturas desactualizadas.
type memRunner struct {
	itemRepo  *memItemRepo
	trxRepo   *memTrxRepo
	orderRepo repository.PurchaseOrderRepository
}

func (r *memRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.TransactionRepository) error) error {
	return fn(r.itemRepo, r.trxRepo)
}

func (r *memRunner) RunPurchasing(_ context.Context, fn func(repository.ItemRepository, repository.TransactionRepository, repository.PurchaseOrderRepository) error) error {
	return fn(r.itemRepo, r.trxRepo, r.orderRepo)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
