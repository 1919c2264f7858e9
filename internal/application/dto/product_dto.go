package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	ReorderLevel    *decimal.Decimal `json:"reorder_level"`
	ReorderQuantity *decimal.Decimal `json:"reorder_quantity"`
	IsActive        *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
