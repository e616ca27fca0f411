package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden de compra.
type OrderItemRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/purchase-orders. La orden nace DRAFT.
type CreateOrderRequest struct {
	SupplierID   string             `json:"supplier_id,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
	Items        []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest body para PUT /api/purchase-orders/:id (solo DRAFT).
type UpdateOrderRequest struct {
	SupplierID   *string            `json:"supplier_id,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
	Items        []OrderItemRequest `json:"items,omitempty"`
}

// CompleteOrderRequest body para POST /api/purchase-orders/:id/complete.
type CompleteOrderRequest struct {
	ReceivedDate *time.Time `json:"received_date,omitempty"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse orden de compra completa.
type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"order_number"`
	SupplierID   string              `json:"supplier_id,omitempty"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	ExpectedDate *time.Time          `json:"expected_date,omitempty"`
	ReceivedDate *time.Time          `json:"received_date,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	Total        decimal.Decimal     `json:"total"`
	CreatedBy    string              `json:"created_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
