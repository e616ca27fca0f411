package repository

import "github.com/jhoicas/Restobar-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia del libro de inventario.
// Es append-only: no hay Update ni Delete para asientos registrados.
type TransactionRepository interface {
	Create(trx *entity.InventoryTransaction) error
	GetByID(id string) (*entity.InventoryTransaction, error)
	// ListByItem devuelve los asientos de un insumo, del más reciente al más antiguo.
	ListByItem(itemID string, limit int) ([]*entity.InventoryTransaction, error)
	// CountByItem cuenta los asientos que referencian un insumo (guardia de borrado).
	CountByItem(itemID string) (int, error)
	ListRecent(limit, offset int) ([]*entity.InventoryTransaction, error)
}
