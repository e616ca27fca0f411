package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items. El stock inicia en 0 y solo se
// mueve vía movimientos; el costo promedio inicia sin valor.
type CreateItemRequest struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku,omitempty"`
	Unit       string          `json:"unit"`
	CategoryID string          `json:"category_id,omitempty"`
	MinStock   decimal.Decimal `json:"min_stock"`
	MaxStock   decimal.Decimal `json:"max_stock"`
	HasExpiry  bool            `json:"has_expiry,omitempty"`
	ExpiryDays int             `json:"expiry_days,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. No permite tocar stock ni costos.
type UpdateItemRequest struct {
	Name       *string          `json:"name,omitempty"`
	SKU        *string          `json:"sku,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	MinStock   *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock   *decimal.Decimal `json:"max_stock,omitempty"`
	HasExpiry  *bool            `json:"has_expiry,omitempty"`
	ExpiryDays *int             `json:"expiry_days,omitempty"`
}

// ItemResponse insumo en respuestas de catálogo.
type ItemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku,omitempty"`
	Unit              string           `json:"unit"`
	CategoryID        string           `json:"category_id,omitempty"`
	CurrentStock      decimal.Decimal  `json:"current_stock"`
	MinStock          decimal.Decimal  `json:"min_stock"`
	MaxStock          decimal.Decimal  `json:"max_stock"`
	AverageCost       *decimal.Decimal `json:"average_cost,omitempty"`
	LastPurchasePrice *decimal.Decimal `json:"last_purchase_price,omitempty"`
	HasExpiry         bool             `json:"has_expiry,omitempty"`
	ExpiryDays        int              `json:"expiry_days,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ItemListResponse listado paginado de insumos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
