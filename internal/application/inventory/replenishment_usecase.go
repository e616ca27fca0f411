package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: insumos en o bajo su stock
// mínimo, con la cantidad sugerida de pedido hasta el stock objetivo.
type ReplenishmentUseCase struct {
	itemRepo repository.ItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.ItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo}
}

// GenerateReplenishmentList devuelve los insumos bajo mínimo con cantidad
// sugerida y prioridad por déficit relativo. El stock objetivo es MaxStock si
// está definido; si no, MinStock * 1.5.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.itemRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		target := item.MaxStock
		if !target.GreaterThan(item.MinStock) {
			target = item.MinStock.Mul(decimal.NewFromFloat(1.5))
		}
		suggestedQty := target.Sub(item.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}

		unitCost := decimal.Zero
		if item.AverageCost != nil {
			unitCost = *item.AverageCost
		} else if item.LastPurchasePrice != nil {
			unitCost = *item.LastPurchasePrice
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             item.ID,
			SKU:                item.SKU,
			Name:               item.Name,
			Unit:               item.Unit,
			CurrentStock:       item.CurrentStock,
			MinStock:           item.MinStock,
			TargetStock:        target,
			SuggestedOrderQty:  suggestedQty,
			EstimatedOrderCost: suggestedQty.Mul(unitCost),
		})
	}

	// Ordenar por déficit relativo: insumos sin stock primero, luego mayor
	// caída porcentual bajo el mínimo.
	deficit := func(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
		if !s.MinStock.GreaterThan(decimal.Zero) {
			return decimal.Zero
		}
		return s.MinStock.Sub(s.CurrentStock).Div(s.MinStock)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return deficit(suggestions[i]).GreaterThan(deficit(suggestions[j]))
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
