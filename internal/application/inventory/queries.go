package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro y del stock: historial, stock bajo y resumen
// de movimientos. Solo lectura; usa repositorios atados al pool.
type QueryUseCase struct {
	itemRepo repository.ItemRepository
	trxRepo  repository.TransactionRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(itemRepo repository.ItemRepository, trxRepo repository.TransactionRepository) *QueryUseCase {
	return &QueryUseCase{itemRepo: itemRepo, trxRepo: trxRepo}
}

// GetTransactionHistory devuelve los últimos asientos de un insumo (commit desc).
func (uc *QueryUseCase) GetTransactionHistory(ctx context.Context, itemID string, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.trxRepo.ListByItem(itemID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return out, nil
}

// ListLowStock devuelve los insumos con stock en o por debajo del mínimo.
func (uc *QueryUseCase) ListLowStock(ctx context.Context) ([]dto.ItemSnapshotResponse, error) {
	items, err := uc.itemRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemSnapshotResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toSnapshotResponse(&entity.ItemSnapshot{Item: *it}))
	}
	return out, nil
}

// GetMovementSummary agrega los movimientos recientes por tipo; los consumos se
// desglosan además por motivo (prefijo de la anotación). Pasada simple en
// memoria sobre una lectura acotada.
func (uc *QueryUseCase) GetMovementSummary(ctx context.Context, limit int) ([]dto.MovementSummaryDTO, error) {
	if limit <= 0 || limit > 2000 {
		limit = 500
	}
	list, err := uc.trxRepo.ListRecent(limit, 0)
	if err != nil {
		return nil, err
	}

	type key struct{ typ, reason string }
	groups := make(map[key]*dto.MovementSummaryDTO)
	order := make([]key, 0)

	for _, t := range list {
		k := key{typ: t.Type}
		if t.Type == entity.TransactionTypeConsumption {
			k.reason = consumptionReason(t.Note)
		}
		g, ok := groups[k]
		if !ok {
			g = &dto.MovementSummaryDTO{Type: k.typ, Reason: k.reason}
			groups[k] = g
			order = append(order, k)
		}
		g.Count++
		g.TotalQuantity = g.TotalQuantity.Add(t.Quantity)
		if t.TotalCost != nil {
			g.TotalCost = g.TotalCost.Add(*t.TotalCost)
		}
	}

	out := make([]dto.MovementSummaryDTO, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out, nil
}

// consumptionReason extrae el motivo del prefijo de la anotación ("waste: ...").
func consumptionReason(note string) string {
	reason := note
	if idx := strings.Index(note, ":"); idx >= 0 {
		reason = note[:idx]
	}
	switch reason {
	case entity.ConsumptionReasonSale, entity.ConsumptionReasonWaste,
		entity.ConsumptionReasonDamage, entity.ConsumptionReasonExpiry:
		return reason
	}
	return "other"
}

func toTransactionResponse(t *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		ItemID:          t.ItemID,
		Type:            t.Type,
		Quantity:        t.Quantity,
		Unit:            t.Unit,
		UnitCost:        t.UnitCost,
		TotalCost:       t.TotalCost,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		PurchaseOrderID: t.PurchaseOrderID,
		OrderNumber:     t.OrderNumber,
		Note:            t.Note,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}

func toSnapshotResponse(s *entity.ItemSnapshot) dto.ItemSnapshotResponse {
	it := s.Item
	return dto.ItemSnapshotResponse{
		ID:                it.ID,
		Name:              it.Name,
		SKU:               it.SKU,
		Unit:              it.Unit,
		CategoryID:        it.CategoryID,
		CategoryName:      s.CategoryName,
		CurrentStock:      it.CurrentStock,
		MinStock:          it.MinStock,
		MaxStock:          it.MaxStock,
		AverageCost:       it.AverageCost,
		LastPurchasePrice: it.LastPurchasePrice,
		LowStock:          it.IsLowStock(),
		UpdatedAt:         it.UpdatedAt,
	}
}
