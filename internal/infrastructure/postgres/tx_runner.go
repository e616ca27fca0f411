package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/application/purchasing"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de Postgres y entrega
// repositorios ligados a esa transacción. Es la única pieza que conoce
// Begin/Commit; los casos de uso solo ven los puertos.
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre una transacción y entrega los repositorios de inventario ligados
// a ella. Si fn devuelve error se hace rollback; si no, commit.
func (r *TxRunner) Run(ctx context.Context, fn func(itemRepo repository.ItemRepository, trxRepo repository.TransactionRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewItemRepo(tx), NewTransactionRepo(tx)); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}

// RunPurchasing es igual a Run pero incluye el repositorio de órdenes de
// compra, para que completar una orden y descargar sus líneas al inventario
// compartan la misma transacción.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(itemRepo repository.ItemRepository, trxRepo repository.TransactionRepository, orderRepo repository.PurchaseOrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewItemRepo(tx), NewTransactionRepo(tx), NewPurchaseOrderRepo(tx)); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
