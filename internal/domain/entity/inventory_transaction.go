package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de inventario.
const (
	TransactionTypePurchase            = "PURCHASE"
	TransactionTypeAdjustment          = "ADJUSTMENT"
	TransactionTypeConsumption         = "CONSUMPTION"
	TransactionTypeStockTakeCorrection = "STOCK_TAKE_CORRECTION"
)

// Motivos de consumo. Todos descuentan stock igual; solo cambia la anotación de auditoría.
const (
	ConsumptionReasonSale   = "sale"
	ConsumptionReasonWaste  = "waste"
	ConsumptionReasonDamage = "damage"
	ConsumptionReasonExpiry = "expiry"
)

// InventoryTransaction es un asiento inmutable del libro de inventario.
// Quantity es con signo: positivo suma stock, negativo resta.
// Invariante: BalanceAfter == BalanceBefore + Quantity, y BalanceBefore es el
// CurrentStock del insumo en el instante del commit (misma transacción de BD).
// No existe update ni delete: las correcciones son nuevas transacciones.
type InventoryTransaction struct {
	ID              string
	ItemID          string
	Type            string
	Quantity        decimal.Decimal
	Unit            string
	UnitCost        *decimal.Decimal // nil en movimientos sin costo
	TotalCost       *decimal.Decimal
	BalanceBefore   decimal.Decimal
	BalanceAfter    decimal.Decimal
	PurchaseOrderID string // vacío si no proviene de una orden de compra
	OrderNumber     string
	Note            string
	CreatedBy       string // actor opcional para auditoría
	CreatedAt       time.Time
}
