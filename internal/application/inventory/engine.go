package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	dominv "github.com/jhoicas/Restobar-api/internal/domain/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// Engine es el motor de mutación de stock. Todo cambio de CurrentStock pasa por
// aquí: lee el saldo con bloqueo de fila, calcula el saldo resultante según la
// variante del movimiento, recalcula el costo promedio en entradas con costo y
// confirma insumo + asiento del libro en una sola transacción de BD.
// No reintenta: un conflicto de concurrencia se devuelve tal cual al caller.
type Engine struct {
	txRunner TxRunner
}

// NewEngine construye el motor.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// ApplyMovementInput describe un intento de movimiento sobre un insumo.
// Movement determina la aritmética; Type es el tipo registrado en el libro
// (ADJUSTMENT o STOCK_TAKE_CORRECTION para Add/Subtract/Set, CONSUMPTION para
// descuentos de venta/merma, PURCHASE queda implícito en Receive).
// UnitCost/TotalCost opcionales anotan costo en asientos que no son compra;
// en un CONSUMPTION sin costo provisto se resuelven dentro de la transacción
// con el promedio vigente del insumo (0 si no tiene). Nunca alteran el costo
// promedio.
type ApplyMovementInput struct {
	ItemID    string
	Movement  dominv.Movement
	Type      string
	UnitCost  *decimal.Decimal
	TotalCost *decimal.Decimal
	Note      string
	ActorID   string
}

// ApplyMovement abre la transacción y aplica el movimiento (ver applyInTx).
// Devuelve el snapshot actualizado del insumo, con categoría para presentación.
func (e *Engine) ApplyMovement(ctx context.Context, in ApplyMovementInput) (*entity.ItemSnapshot, error) {
	var snap *entity.ItemSnapshot
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		trxRepo repository.TransactionRepository,
	) error {
		var err error
		snap, err = e.ApplyMovementInTx(itemRepo, trxRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ApplyMovementInTx aplica el movimiento usando repositorios ya atados a una
// transacción del caller. Lo usa la finalización de órdenes de compra para que
// todas las líneas y el cambio de estado compartan una única transacción.
func (e *Engine) ApplyMovementInTx(
	itemRepo repository.ItemRepository,
	trxRepo repository.TransactionRepository,
	in ApplyMovementInput,
	now time.Time,
) (*entity.ItemSnapshot, error) {
	if in.ItemID == "" || in.Movement == nil {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del insumo: serializa escritores concurrentes sobre el
	// mismo insumo; dos SUBTRACT simultáneos nunca leen el mismo BalanceBefore.
	item, err := itemRepo.GetByIDForUpdate(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	before := item.CurrentStock
	after, err := in.Movement.BalanceAfter(before)
	if err != nil {
		return nil, err
	}
	// El asiento siempre refleja un movimiento: para Set la cantidad es el delta.
	qty := after.Sub(before)

	trxType := in.Type
	unitCost := in.UnitCost
	totalCost := in.TotalCost
	orderID, orderNumber := "", ""

	switch m := in.Movement.(type) {
	case dominv.Receive:
		trxType = entity.TransactionTypePurchase
		uc := m.UnitCost
		tc := m.TotalCost
		unitCost, totalCost = &uc, &tc
		item.AverageCost = dominv.AverageCost(before, item.AverageCost, m.UnitCost, m.TotalCost, after)
		lp := m.UnitCost
		item.LastPurchasePrice = &lp
		orderID, orderNumber = m.PurchaseOrderID, m.OrderNumber
	case dominv.Add, dominv.Subtract, dominv.Set:
		if trxType != entity.TransactionTypeAdjustment &&
			trxType != entity.TransactionTypeConsumption &&
			trxType != entity.TransactionTypeStockTakeCorrection {
			return nil, domain.ErrInvalidInput
		}
		// Costeo del consumo con la misma lectura bloqueada que fija
		// BalanceBefore: un snapshot anterior del promedio podría ser viejo si
		// una compra costeada aterrizó en el intermedio.
		if trxType == entity.TransactionTypeConsumption {
			if unitCost == nil {
				c := decimal.Zero
				if item.AverageCost != nil {
					c = *item.AverageCost
				}
				unitCost = &c
			}
			if totalCost == nil {
				tc := unitCost.Mul(qty.Abs())
				totalCost = &tc
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	item.CurrentStock = after
	item.UpdatedAt = now
	if err := itemRepo.UpdateStock(item); err != nil {
		return nil, err
	}

	trx := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		Type:            trxType,
		Quantity:        qty,
		Unit:            item.Unit,
		UnitCost:        unitCost,
		TotalCost:       totalCost,
		BalanceBefore:   before,
		BalanceAfter:    after,
		PurchaseOrderID: orderID,
		OrderNumber:     orderNumber,
		Note:            in.Note,
		CreatedBy:       in.ActorID,
		CreatedAt:       now,
	}
	if err := trxRepo.Create(trx); err != nil {
		return nil, err
	}

	snap, err := itemRepo.Snapshot(item.ID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap = &entity.ItemSnapshot{Item: *item}
	}
	return snap, nil
}
