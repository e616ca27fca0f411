package inventory_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. Entregan y guardan copias
// para imitar el comportamiento de una BD real: mutar el struct devuelto no
// afecta el "almacén" hasta que se persista explícitamente.
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
	stored, ok := r.items[item.ID]
	if !ok {
		return nil
	}
	stored.CurrentStock = item.CurrentStock
	stored.AverageCost = nil
	if item.AverageCost != nil {
		v := *item.AverageCost
		stored.AverageCost = &v
	}
	stored.LastPurchasePrice = nil
	if item.LastPurchasePrice != nil {
		v := *item.LastPurchasePrice
		stored.LastPurchasePrice = &v
	}
	stored.UpdatedAt = item.UpdatedAt
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

func newMemTrxRepo() *memTrxRepo { return &memTrxRepo{} }

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

// sumQuantities suma las cantidades con signo de todos los asientos de un insumo.
func (r *memTrxRepo) sumQuantities(itemID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.trxs {
		if t.ItemID == itemID {
			total = total.Add(t.Quantity)
		}
	}
	return total
}

// memRunner ejecuta la función directamente sobre los repositorios en memoria.
// No simula rollback: los tests de fallo verifican que el motor falla antes de
// escribir, que es la garantía que importa a nivel de caso de uso.
type memRunner struct {
	itemRepo *memItemRepo
	trxRepo  *memTrxRepo
}

func (r *memRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.TransactionRepository) error) error {
	return fn(r.itemRepo, r.trxRepo)
}

// repricingRunner cambia el costo promedio del insumo justo antes de entregar
// los repositorios, imitando una compra costeada que confirma entre la
// petición de un consumo y la apertura de su transacción.
type repricingRunner struct {
	itemRepo *memItemRepo
	trxRepo  *memTrxRepo
	itemID   string
	newAvg   decimal.Decimal
}

func (r *repricingRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.TransactionRepository) error) error {
	if it, ok := r.itemRepo.items[r.itemID]; ok {
		v := r.newAvg
		it.AverageCost = &v
	}
	return fn(r.itemRepo, r.trxRepo)
}
