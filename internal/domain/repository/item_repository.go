package repository

import "github.com/jhoicas/Restobar-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// UpdateStock es exclusivo del motor de movimientos y debe invocarse dentro de
// la misma transacción de BD que el asiento del libro.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetByIDForUpdate obtiene el insumo bloqueando la fila (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	// Update actualiza los atributos de catálogo; no toca stock ni costos.
	Update(item *entity.InventoryItem) error
	// UpdateStock persiste CurrentStock, AverageCost y LastPurchasePrice.
	UpdateStock(item *entity.InventoryItem) error
	List(limit, offset int) ([]*entity.InventoryItem, error)
	// ListLowStock devuelve los insumos con CurrentStock <= MinStock.
	ListLowStock() ([]*entity.InventoryItem, error)
	// Snapshot devuelve el insumo con el nombre de su categoría.
	Snapshot(id string) (*entity.ItemSnapshot, error)
	Delete(id string) error
}
