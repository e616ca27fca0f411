package http

import (
	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

func toSnapshotDTO(s *entity.ItemSnapshot) dto.ItemSnapshotResponse {
	return dto.ItemSnapshotResponse{
		ID:                s.Item.ID,
		Name:              s.Item.Name,
		SKU:               s.Item.SKU,
		Unit:              s.Item.Unit,
		CategoryID:        s.Item.CategoryID,
		CategoryName:      s.CategoryName,
		CurrentStock:      s.Item.CurrentStock,
		MinStock:          s.Item.MinStock,
		MaxStock:          s.Item.MaxStock,
		AverageCost:       s.Item.AverageCost,
		LastPurchasePrice: s.Item.LastPurchasePrice,
		LowStock:          s.Item.IsLowStock(),
		UpdatedAt:         s.Item.UpdatedAt,
	}
}
