package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	appinv "github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/application/purchasing"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

type fixture struct {
	uc        *purchasing.UseCase
	itemRepo  *memItemRepo
	trxRepo   *memTrxRepo
	orderRepo *memOrderRepo
	suppliers *memSupplierRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	itemRepo := newMemItemRepo()
	trxRepo := &memTrxRepo{}
	orderRepo := newMemOrderRepo()
	suppliers := newMemSupplierRepo()
	runner := &memRunner{itemRepo: itemRepo, trxRepo: trxRepo, orderRepo: orderRepo}
	engine := appinv.NewEngine(runner)
	return &fixture{
		uc:        purchasing.NewUseCase(runner, engine, orderRepo, itemRepo, suppliers),
		itemRepo:  itemRepo,
		trxRepo:   trxRepo,
		orderRepo: orderRepo,
		suppliers: suppliers,
	}
}

func (f *fixture) seedItem(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.itemRepo.Create(&entity.InventoryItem{
		ID: id, Name: "Café en grano", Unit: "kg",
		MinStock: dec("2"), MaxStock: dec("30"),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func (f *fixture) createDraft(t *testing.T, lines []dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	order, err := f.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{Items: lines})
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida: DRAFT → COMPLETED | CANCELLED.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_NaceDraftConConsecutivo(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")

	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})

	assert.Equal(t, entity.OrderStatusDraft, order.Status)
	assert.Equal(t, "OC-000001", order.OrderNumber)
	assert.True(t, dec("50").Equal(order.Total))
	assert.Empty(t, f.trxRepo.trxs, "una orden DRAFT nunca toca el libro")

	second := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("5")},
	})
	assert.Equal(t, "OC-000002", second.OrderNumber, "el consecutivo es monótono")
}

func TestCreateOrder_SinLineasEsInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_InsumoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ItemID: "fantasma", Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	_, err := f.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.OrderItemRequest{{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteOrder_DescargaAlInventario(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	f.seedItem(t, "item-2")

	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
		{ItemID: "item-2", Quantity: dec("4"), UnitPrice: dec("2.5")},
	})

	completed, err := f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)
	require.NotNil(t, completed.ReceivedDate)

	// Un asiento PURCHASE por línea, referenciando la orden.
	require.Len(t, f.trxRepo.trxs, 2)
	for _, trx := range f.trxRepo.trxs {
		assert.Equal(t, entity.TransactionTypePurchase, trx.Type)
		assert.Equal(t, order.ID, trx.PurchaseOrderID)
		assert.Equal(t, order.OrderNumber, trx.OrderNumber)
	}

	// Stock y costo promedio del primer insumo (entrada sobre stock cero).
	item, err := f.itemRepo.GetByID("item-1")
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(item.CurrentStock))
	require.NotNil(t, item.AverageCost)
	assert.True(t, dec("5").Equal(*item.AverageCost))
	require.NotNil(t, item.LastPurchasePrice)
	assert.True(t, dec("5").Equal(*item.LastPurchasePrice))
}

func TestCompleteOrder_DobleCompletadoRechazado(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})

	_, err := f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	require.NoError(t, err)

	_, err = f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "completar dos veces duplicaría la entrada")
	assert.Len(t, f.trxRepo.trxs, 1, "el segundo intento no asienta nada")

	item, err := f.itemRepo.GetByID("item-1")
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(item.CurrentStock))
}

func TestCompleteOrder_FechaRecepcionExplicita(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("1")},
	})

	received := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	completed, err := f.uc.CompleteOrder(context.Background(), order.ID, "user-1", &received)
	require.NoError(t, err)
	require.NotNil(t, completed.ReceivedDate)
	assert.True(t, received.Equal(*completed.ReceivedDate))
}

func TestCancelOrder_DraftNoTocaStock(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})

	cancelled, err := f.uc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Empty(t, f.trxRepo.trxs, "cancelar un DRAFT no genera asientos")

	item, err := f.itemRepo.GetByID("item-1")
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.IsZero())
}

func TestCancelOrder_CompletadaEsTerminal(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})
	_, err := f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"una orden completada no se cancela; la reversión sería un ajuste explícito")
}

func TestCancelOrder_NoPisaUnaFinalizacionConcurrente(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})
	_, err := f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	require.NoError(t, err)

	// Un cancel cuya lectura todavía ve la orden en DRAFT, porque la
	// finalización confirmó en el intermedio.
	stale := &staleOrderRepo{memOrderRepo: f.orderRepo, staleID: order.ID}
	runner := &memRunner{itemRepo: f.itemRepo, trxRepo: f.trxRepo, orderRepo: stale}
	uc := purchasing.NewUseCase(runner, appinv.NewEngine(runner), stale, f.itemRepo, f.suppliers)

	_, err = uc.CancelOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := f.orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, stored.Status,
		"COMPLETED es terminal aun con una lectura desactualizada")
	assert.Len(t, f.trxRepo.trxs, 1, "los asientos PURCHASE siguen colgando de una orden completada")
}

func TestUpdateOrder_NoReescribeLineasDeUnaCompletadaConcurrente(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	f.seedItem(t, "item-2")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})
	_, err := f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	require.NoError(t, err)

	stale := &staleOrderRepo{memOrderRepo: f.orderRepo, staleID: order.ID}
	runner := &memRunner{itemRepo: f.itemRepo, trxRepo: f.trxRepo, orderRepo: stale}
	uc := purchasing.NewUseCase(runner, appinv.NewEngine(runner), stale, f.itemRepo, f.suppliers)

	_, err = uc.UpdateOrder(context.Background(), order.ID, dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{{ItemID: "item-2", Quantity: dec("3"), UnitPrice: dec("9")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := f.orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1, "las líneas siguen siendo las que respaldan los asientos")
	assert.Equal(t, "item-1", stored.Items[0].ItemID)
	assert.True(t, dec("10").Equal(stored.Items[0].Quantity))
}

func TestUpdateOrder_SoloDraft(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "item-1")
	order := f.createDraft(t, []dto.OrderItemRequest{
		{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("5")},
	})

	notes := "entregar por la puerta trasera"
	updated, err := f.uc.UpdateOrder(context.Background(), order.ID, dto.UpdateOrderRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	_, err = f.uc.CompleteOrder(context.Background(), order.ID, "user-1", nil)
	require.NoError(t, err)

	_, err = f.uc.UpdateOrder(context.Background(), order.ID, dto.UpdateOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestListOrders_FiltroDeEstadoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListOrders(context.Background(), "PENDING", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
