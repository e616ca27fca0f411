package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. DRAFT es el único estado editable;
// COMPLETED y CANCELLED son terminales.
const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrder agrupa líneas de compra a un proveedor. Solo al completarse
// genera transacciones PURCHASE en el libro de inventario (una por línea).
type PurchaseOrder struct {
	ID           string
	OrderNumber  string // secuencia de la BD, formateada con ceros a la izquierda
	SupplierID   string // opcional
	Status       string
	Notes        string
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	Items        []PurchaseOrderItem
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem es una línea de la orden: insumo, cantidad y precio pactado.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ItemID          string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
}

// Subtotal devuelve Quantity * UnitPrice.
func (it PurchaseOrderItem) Subtotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// Total suma los subtotales de todas las líneas.
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// IsDraft indica si la orden sigue editable.
func (o *PurchaseOrder) IsDraft() bool { return o.Status == OrderStatusDraft }
