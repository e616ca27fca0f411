package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo del inventario (harina, carne, botellas, etc.).
// CurrentStock y AverageCost se mutan exclusivamente a través del motor de movimientos;
// el CRUD de catálogo solo toca los atributos descriptivos.
type InventoryItem struct {
	ID                string
	Name              string
	SKU               string // opcional, único si no vacío
	Unit              string // unidad base fija por insumo (kg, lt, und); sin conversión
	CategoryID        string
	CurrentStock      decimal.Decimal
	MinStock          decimal.Decimal
	MaxStock          decimal.Decimal
	AverageCost       *decimal.Decimal // nil hasta la primera entrada con costo
	LastPurchasePrice *decimal.Decimal
	HasExpiry         bool
	ExpiryDays        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el insumo está en o por debajo de su stock mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStock)
}

// ItemSnapshot es la vista de un insumo devuelta por el motor de movimientos,
// enriquecida con el nombre de la categoría para presentación.
type ItemSnapshot struct {
	Item         InventoryItem
	CategoryName string
}
