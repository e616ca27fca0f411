package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	dominv "github.com/jhoicas/Restobar-api/internal/domain/inventory"
)

// IntakeUseCase traduce consumos y ajustes manuales en movimientos del motor.
// El motivo del consumo (venta, merma, daño, vencimiento) es metadato del
// asiento, no un tipo de movimiento distinto: el efecto numérico es idéntico.
type IntakeUseCase struct {
	engine *Engine
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(engine *Engine) *IntakeUseCase {
	return &IntakeUseCase{engine: engine}
}

// ConsumptionInput entrada para registrar un consumo. Quantity es magnitud (> 0).
// UnitCost/TotalCost son opcionales: si faltan, el motor los resuelve dentro de
// su transacción con el costo promedio vigente del insumo (0 si aún no tiene).
type ConsumptionInput struct {
	ItemID    string
	Quantity  decimal.Decimal
	Reason    string // sale, waste, damage, expiry
	UnitCost  *decimal.Decimal
	TotalCost *decimal.Decimal
	Note      string
	ActorID   string
}

// Modos de ajuste manual.
const (
	AdjustModeAdd      = "ADD"
	AdjustModeSubtract = "SUBTRACT"
	AdjustModeSet      = "SET"
)

// AdjustmentInput entrada para un ajuste manual. Quantity es magnitud no negativa
// para ADD/SUBTRACT y el valor objetivo para SET. StockTake marca el ajuste como
// corrección por conteo físico (STOCK_TAKE_CORRECTION en el libro).
type AdjustmentInput struct {
	ItemID    string
	Mode      string
	Quantity  decimal.Decimal
	StockTake bool
	Note      string
	ActorID   string
}

// RegisterConsumption descuenta stock por consumo y registra el motivo como
// anotación de auditoría. Falla con ErrNegativeStock si el insumo no alcanza.
func (uc *IntakeUseCase) RegisterConsumption(ctx context.Context, in ConsumptionInput) (*entity.ItemSnapshot, error) {
	switch in.Reason {
	case entity.ConsumptionReasonSale, entity.ConsumptionReasonWaste,
		entity.ConsumptionReasonDamage, entity.ConsumptionReasonExpiry:
	default:
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	note := in.Reason
	if in.Note != "" {
		note = in.Reason + ": " + in.Note
	}

	return uc.engine.ApplyMovement(ctx, ApplyMovementInput{
		ItemID:    in.ItemID,
		Movement:  dominv.Subtract{Qty: in.Quantity},
		Type:      entity.TransactionTypeConsumption,
		UnitCost:  in.UnitCost,
		TotalCost: in.TotalCost,
		Note:      note,
		ActorID:   in.ActorID,
	})
}

// RegisterAdjustment aplica un ajuste manual ADD/SUBTRACT/SET. SET registra en el
// libro el delta contra el saldo anterior, nunca la asignación absoluta.
func (uc *IntakeUseCase) RegisterAdjustment(ctx context.Context, in AdjustmentInput) (*entity.ItemSnapshot, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var mov dominv.Movement
	switch in.Mode {
	case AdjustModeAdd:
		mov = dominv.Add{Qty: in.Quantity}
	case AdjustModeSubtract:
		mov = dominv.Subtract{Qty: in.Quantity}
	case AdjustModeSet:
		mov = dominv.Set{Target: in.Quantity}
	default:
		return nil, domain.ErrInvalidInput
	}

	trxType := entity.TransactionTypeAdjustment
	if in.StockTake {
		trxType = entity.TransactionTypeStockTakeCorrection
	}

	return uc.engine.ApplyMovement(ctx, ApplyMovementInput{
		ItemID:   in.ItemID,
		Movement: mov,
		Type:     trxType,
		Note:     in.Note,
		ActorID:  in.ActorID,
	})
}
