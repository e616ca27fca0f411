package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepo construye el adaptador de persistencia para insumos. Pasar pool o tx (Querier).
func NewItemRepo(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, sku, unit, category_id, current_stock, min_stock, max_stock,
		average_cost, last_purchase_price, has_expiry, expiry_days, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Name, &it.SKU, &it.Unit, &it.CategoryID,
		&it.CurrentStock, &it.MinStock, &it.MaxStock,
		&it.AverageCost, &it.LastPurchasePrice,
		&it.HasExpiry, &it.ExpiryDays, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo insumo. Stock y costos arrancan en su valor inicial.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, sku, unit, category_id, current_stock, min_stock, max_stock,
			average_cost, last_purchase_price, has_expiry, expiry_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Unit, item.CategoryID,
		item.CurrentStock, item.MinStock, item.MaxStock,
		item.AverageCost, item.LastPurchasePrice,
		item.HasExpiry, item.ExpiryDays, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return it, nil
}

// GetByIDForUpdate obtiene un insumo bloqueando la fila hasta el fin de la
// transacción. Solo tiene sentido con un Querier ligado a una tx.
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo for update: %w", err)
	}
	return it, nil
}

// GetBySKU obtiene un insumo por SKU.
func (r *ItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo by sku: %w", err)
	}
	return it, nil
}

// Update actualiza los atributos de catálogo. No toca stock ni costos (se manejan vía movimientos).
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, sku = $3, unit = $4, category_id = $5, min_stock = $6, max_stock = $7,
			has_expiry = $8, expiry_days = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Unit, item.CategoryID,
		item.MinStock, item.MaxStock, item.HasExpiry, item.ExpiryDays, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update insumo: %w", err)
	}
	return nil
}

// UpdateStock persiste stock y costos del insumo (uso exclusivo del motor de movimientos).
func (r *ItemRepo) UpdateStock(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET current_stock = $2, average_cost = $3, last_purchase_price = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CurrentStock, item.AverageCost, item.LastPurchasePrice,
	)
	if err != nil {
		return fmt.Errorf("update stock insumo: %w", err)
	}
	return nil
}

// List lista insumos con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListLowStock devuelve los insumos con stock actual en o por debajo del mínimo.
func (r *ItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE current_stock <= min_stock ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list insumos bajo stock: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Snapshot devuelve el insumo junto al nombre de su categoría.
func (r *ItemRepo) Snapshot(id string) (*entity.ItemSnapshot, error) {
	query := `
		SELECT i.id, i.name, i.sku, i.unit, i.category_id, i.current_stock, i.min_stock, i.max_stock,
			i.average_cost, i.last_purchase_price, i.has_expiry, i.expiry_days, i.created_at, i.updated_at,
			COALESCE(c.name, '')
		FROM inventory_items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1`
	var s entity.ItemSnapshot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.Item.ID, &s.Item.Name, &s.Item.SKU, &s.Item.Unit, &s.Item.CategoryID,
		&s.Item.CurrentStock, &s.Item.MinStock, &s.Item.MaxStock,
		&s.Item.AverageCost, &s.Item.LastPurchasePrice,
		&s.Item.HasExpiry, &s.Item.ExpiryDays, &s.Item.CreatedAt, &s.Item.UpdatedAt,
		&s.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot insumo: %w", err)
	}
	return &s, nil
}

// Delete elimina un insumo. El caso de uso valida antes que no tenga movimientos.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete insumo: %w", err)
	}
	return nil
}
