package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
// El libro es append-only: este adaptador no expone UPDATE ni DELETE.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepo construye el adaptador de persistencia del libro de inventario.
func NewTransactionRepo(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const trxColumns = `id, item_id, type, quantity, unit, unit_cost, total_cost,
		balance_before, balance_after, purchase_order_id, order_number, note, created_by, created_at`

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	err := row.Scan(
		&t.ID, &t.ItemID, &t.Type, &t.Quantity, &t.Unit,
		&t.UnitCost, &t.TotalCost, &t.BalanceBefore, &t.BalanceAfter,
		&t.PurchaseOrderID, &t.OrderNumber, &t.Note, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un asiento del libro.
func (r *TransactionRepo) Create(trx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, item_id, type, quantity, unit, unit_cost, total_cost,
			balance_before, balance_after, purchase_order_id, order_number, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.ItemID, trx.Type, trx.Quantity, trx.Unit,
		trx.UnitCost, trx.TotalCost, trx.BalanceBefore, trx.BalanceAfter,
		trx.PurchaseOrderID, trx.OrderNumber, trx.Note, trx.CreatedBy, trx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asiento: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM inventory_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asiento: %w", err)
	}
	return t, nil
}

// ListByItem devuelve los asientos de un insumo, del más reciente al más antiguo.
func (r *TransactionRepo) ListByItem(itemID string, limit int) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM inventory_transactions
		WHERE item_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list asientos por insumo: %w", err)
	}
	defer rows.Close()

	var trxs []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asiento: %w", err)
		}
		trxs = append(trxs, t)
	}
	return trxs, rows.Err()
}

// CountByItem cuenta los asientos que referencian un insumo.
func (r *TransactionRepo) CountByItem(itemID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_transactions WHERE item_id = $1`, itemID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count asientos por insumo: %w", err)
	}
	return count, nil
}

// ListRecent devuelve los últimos asientos de todo el inventario, paginados.
func (r *TransactionRepo) ListRecent(limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM inventory_transactions
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list asientos recientes: %w", err)
	}
	defer rows.Close()

	var trxs []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asiento: %w", err)
		}
		trxs = append(trxs, t)
	}
	return trxs, rows.Err()
}
