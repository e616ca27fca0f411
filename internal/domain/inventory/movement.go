package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain"
)

// Movement es el tipo cerrado de movimientos de stock. Cada variante conoce su
// propia regla aritmética sobre el saldo; el método no exportado sella el tipo
// para que agregar una variante obligue a atender cada switch del motor.
type Movement interface {
	// BalanceAfter calcula el saldo resultante a partir del saldo actual.
	// Devuelve ErrNegativeStock si el movimiento dejaría el stock negativo.
	BalanceAfter(before decimal.Decimal) (decimal.Decimal, error)
	movement()
}

// Add suma una magnitud no negativa al stock (ajuste de entrada).
type Add struct {
	Qty decimal.Decimal
}

// Subtract resta una magnitud no negativa; nunca deja el stock negativo.
type Subtract struct {
	Qty decimal.Decimal
}

// Set fija el stock en un valor absoluto (conteo físico). El asiento del libro
// registra el delta (target - saldo anterior), nunca la asignación absoluta.
type Set struct {
	Target decimal.Decimal
}

// Receive es una entrada por compra: siempre suma stock y trae costo.
type Receive struct {
	Qty       decimal.Decimal
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
	// Referencia a la orden de compra que originó la entrada (opcional).
	PurchaseOrderID string
	OrderNumber     string
}

func (m Add) BalanceAfter(before decimal.Decimal) (decimal.Decimal, error) {
	if m.Qty.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return before.Add(m.Qty), nil
}

func (m Subtract) BalanceAfter(before decimal.Decimal) (decimal.Decimal, error) {
	if m.Qty.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	after := before.Sub(m.Qty)
	if after.IsNegative() {
		return decimal.Zero, domain.ErrNegativeStock
	}
	return after, nil
}

func (m Set) BalanceAfter(decimal.Decimal) (decimal.Decimal, error) {
	if m.Target.IsNegative() {
		return decimal.Zero, domain.ErrNegativeStock
	}
	return m.Target, nil
}

func (m Receive) BalanceAfter(before decimal.Decimal) (decimal.Decimal, error) {
	if !m.Qty.GreaterThan(decimal.Zero) || m.UnitCost.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return before.Add(m.Qty), nil
}

func (Add) movement()      {}
func (Subtract) movement() {}
func (Set) movement()      {}
func (Receive) movement()  {}
