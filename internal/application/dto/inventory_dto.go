package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterConsumptionRequest body para POST /api/inventory/consumptions.
type RegisterConsumptionRequest struct {
	ItemID    string           `json:"item_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Reason    string           `json:"reason"` // sale, waste, damage, expiry
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
	Note      string           `json:"note,omitempty"`
}

// RegisterAdjustmentRequest body para POST /api/inventory/adjustments.
// quantity es magnitud para ADD/SUBTRACT y valor objetivo para SET.
type RegisterAdjustmentRequest struct {
	ItemID    string          `json:"item_id"`
	Mode      string          `json:"mode"` // ADD, SUBTRACT, SET
	Quantity  decimal.Decimal `json:"quantity"`
	StockTake bool            `json:"stock_take,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// ItemSnapshotResponse estado de un insumo tras un movimiento.
type ItemSnapshotResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku,omitempty"`
	Unit              string           `json:"unit"`
	CategoryID        string           `json:"category_id,omitempty"`
	CategoryName      string           `json:"category_name,omitempty"`
	CurrentStock      decimal.Decimal  `json:"current_stock"`
	MinStock          decimal.Decimal  `json:"min_stock"`
	MaxStock          decimal.Decimal  `json:"max_stock"`
	AverageCost       *decimal.Decimal `json:"average_cost,omitempty"`
	LastPurchasePrice *decimal.Decimal `json:"last_purchase_price,omitempty"`
	LowStock          bool             `json:"low_stock"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TransactionResponse asiento del libro de inventario.
type TransactionResponse struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"item_id"`
	Type            string           `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            string           `json:"unit"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       *decimal.Decimal `json:"total_cost,omitempty"`
	BalanceBefore   decimal.Decimal  `json:"balance_before"`
	BalanceAfter    decimal.Decimal  `json:"balance_after"`
	PurchaseOrderID string           `json:"purchase_order_id,omitempty"`
	OrderNumber     string           `json:"order_number,omitempty"`
	Note            string           `json:"note,omitempty"`
	CreatedBy       string           `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MovementSummaryDTO agregado de movimientos por tipo (y motivo para consumos).
type MovementSummaryDTO struct {
	Type          string          `json:"type"`
	Reason        string          `json:"reason,omitempty"`
	Count         int             `json:"count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un insumo bajo mínimo.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku,omitempty"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStock           decimal.Decimal `json:"min_stock"`
	TargetStock        decimal.Decimal `json:"target_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
