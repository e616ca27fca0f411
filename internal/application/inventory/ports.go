package inventory

import (
	"context"

	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor: la
// actualización del insumo y el asiento del libro se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		trxRepo repository.TransactionRepository,
	) error) error
}
