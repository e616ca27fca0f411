package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockAnterior * CostoAnterior) + CostoTotalEntrada) / StockResultante
// Si no hay costo previo (primera entrada con costo), el promedio es el costo unitario
// de la entrada. Si el stock resultante es cero no hay divisor con sentido y se
// conserva el promedio anterior.
func AverageCost(balanceBefore decimal.Decimal, currentAvg *decimal.Decimal, unitCost, totalCost, balanceAfter decimal.Decimal) *decimal.Decimal {
	if balanceAfter.IsZero() {
		return currentAvg
	}
	if currentAvg == nil {
		c := unitCost
		return &c
	}
	num := currentAvg.Mul(balanceBefore).Add(totalCost)
	avg := num.Div(balanceAfter)
	return &avg
}
