package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/application/usecase"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria mínimos para el CRUD de catálogo.
// ──────────────────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items map[string]*entity.InventoryItem
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (r *stubItemRepo) Create(item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *stubItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *stubItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubItemRepo) Update(item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubItemRepo) UpdateStock(item *entity.InventoryItem) error {
	return r.Update(item)
}

func (r *stubItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubItemRepo) ListLowStock() ([]*entity.InventoryItem, error) { return nil, nil }

func (r *stubItemRepo) Snapshot(id string) (*entity.ItemSnapshot, error) {
	it, err := r.GetByID(id)
	if err != nil || it == nil {
		return nil, err
	}
	return &entity.ItemSnapshot{Item: *it}, nil
}

func (r *stubItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type stubTrxRepo struct {
	countByItem map[string]int
}

var _ repository.TransactionRepository = (*stubTrxRepo)(nil)

func (r *stubTrxRepo) Create(*entity.InventoryTransaction) error { return nil }
func (r *stubTrxRepo) GetByID(string) (*entity.InventoryTransaction, error) {
	return nil, nil
}
func (r *stubTrxRepo) ListByItem(string, int) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}
func (r *stubTrxRepo) CountByItem(itemID string) (int, error) {
	return r.countByItem[itemID], nil
}
func (r *stubTrxRepo) ListRecent(int, int) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

type stubCategoryRepo struct {
	categories map[string]*entity.Category
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func (r *stubCategoryRepo) Create(c *entity.Category) error { return nil }
func (r *stubCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *stubCategoryRepo) GetByName(string) (*entity.Category, error) { return nil, nil }
func (r *stubCategoryRepo) Update(*entity.Category) error              { return nil }
func (r *stubCategoryRepo) List(int, int) ([]*entity.Category, error)  { return nil, nil }
func (r *stubCategoryRepo) Delete(string) error                        { return nil }

func newItemUC() (*usecase.ItemUseCase, *stubItemRepo, *stubTrxRepo) {
	itemRepo := newStubItemRepo()
	trxRepo := &stubTrxRepo{countByItem: make(map[string]int)}
	catRepo := &stubCategoryRepo{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Carnes", Status: "active"},
	}}
	return usecase.NewItemUseCase(itemRepo, trxRepo, catRepo), itemRepo, trxRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del CRUD de insumos.
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_StockInicialCero(t *testing.T) {
	uc, _, _ := newItemUC()

	item, err := uc.Create(dto.CreateItemRequest{
		Name: "Lomo de res", Unit: "kg", CategoryID: "cat-1",
		MinStock: decimal.NewFromInt(5), MaxStock: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.IsZero(), "el stock nace en cero; solo lo mueven los movimientos")
	assert.Nil(t, item.AverageCost, "el costo promedio nace sin valor")
}

func TestItemCreate_SKUDuplicado(t *testing.T) {
	uc, _, _ := newItemUC()
	_, err := uc.Create(dto.CreateItemRequest{Name: "A", Unit: "und", SKU: "SKU-1"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateItemRequest{Name: "B", Unit: "und", SKU: "SKU-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _ := newItemUC()
	_, err := uc.Create(dto.CreateItemRequest{Name: "A", Unit: "und", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUpdate_NoTocaStockNiCostos(t *testing.T) {
	uc, itemRepo, _ := newItemUC()
	avg := decimal.NewFromInt(6)
	itemRepo.items["item-1"] = &entity.InventoryItem{
		ID: "item-1", Name: "Harina", Unit: "kg",
		CurrentStock: decimal.NewFromInt(12), AverageCost: &avg,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}

	name := "Harina de trigo"
	out, err := uc.Update("item-1", dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, decimal.NewFromInt(12).Equal(out.CurrentStock),
		"el CRUD de catálogo no altera el stock")
	require.NotNil(t, out.AverageCost)
	assert.True(t, avg.Equal(*out.AverageCost))
}

func TestItemDelete_SinMovimientosElimina(t *testing.T) {
	uc, itemRepo, _ := newItemUC()
	itemRepo.items["item-1"] = &entity.InventoryItem{ID: "item-1", Name: "Harina", Unit: "kg"}

	require.NoError(t, uc.Delete("item-1"))
	_, err := uc.GetByID("item-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemDelete_ConMovimientosRechazado(t *testing.T) {
	uc, itemRepo, trxRepo := newItemUC()
	itemRepo.items["item-1"] = &entity.InventoryItem{ID: "item-1", Name: "Harina", Unit: "kg"}
	trxRepo.countByItem["item-1"] = 3

	err := uc.Delete("item-1")
	assert.ErrorIs(t, err, domain.ErrItemHasMovements,
		"un insumo con asientos en el libro no puede eliminarse")
}
