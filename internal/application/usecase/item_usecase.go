package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ItemUseCase CRUD de catálogo para insumos. CurrentStock y AverageCost no se
// tocan aquí: solo los muta el motor de movimientos.
type ItemUseCase struct {
	repo         repository.ItemRepository
	trxRepo      repository.TransactionRepository
	categoryRepo repository.CategoryRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, trxRepo repository.TransactionRepository, categoryRepo repository.CategoryRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, trxRepo: trxRepo, categoryRepo: categoryRepo}
}

// Create crea un insumo. El stock inicia en 0 y el costo promedio sin valor.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() || in.MaxStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, _ := uc.repo.GetBySKU(in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         in.Name,
		SKU:          in.SKU,
		Unit:         in.Unit,
		CategoryID:   in.CategoryID,
		CurrentStock: decimal.Zero,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		HasExpiry:    in.HasExpiry,
		ExpiryDays:   in.ExpiryDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un insumo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza atributos de catálogo. No permite modificar stock ni costos.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		if *in.SKU != "" {
			existing, _ := uc.repo.GetBySKU(*in.SKU)
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		item.SKU = *in.SKU
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			category, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrNotFound
			}
		}
		item.CategoryID = *in.CategoryID
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		if in.MaxStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MaxStock = *in.MaxStock
	}
	if in.HasExpiry != nil {
		item.HasExpiry = *in.HasExpiry
	}
	if in.ExpiryDays != nil {
		item.ExpiryDays = *in.ExpiryDays
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista insumos con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un insumo solo si no tiene asientos en el libro: el historial
// de auditoría nunca pierde su insumo.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	count, err := uc.trxRepo.CountByItem(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrItemHasMovements
	}
	return uc.repo.Delete(id)
}

func toItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		SKU:               i.SKU,
		Unit:              i.Unit,
		CategoryID:        i.CategoryID,
		CurrentStock:      i.CurrentStock,
		MinStock:          i.MinStock,
		MaxStock:          i.MaxStock,
		AverageCost:       i.AverageCost,
		LastPurchasePrice: i.LastPurchasePrice,
		HasExpiry:         i.HasExpiry,
		ExpiryDays:        i.ExpiryDays,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
