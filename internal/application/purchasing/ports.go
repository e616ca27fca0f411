package purchasing

import (
	"context"

	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita la finalización de órdenes: todas las líneas, sus
// asientos y el cambio de estado comparten la misma transacción.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		trxRepo repository.TransactionRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
