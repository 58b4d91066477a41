package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear (o clonar) un producto.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Brand          string          `json:"brand" validate:"required"`
	Color          string          `json:"color"`
	CostPrice      decimal.Decimal `json:"cost_price" validate:"required,gt=0"`
	UnitsPerBox    int             `json:"units_per_box"`
	RepurchaseRule int             `json:"repurchase_rule"`
}

// UpdateProductRequest entrada para editar un producto; el SKU viene en la ruta.
type UpdateProductRequest struct {
	Name           string          `json:"name" validate:"required"`
	Brand          string          `json:"brand" validate:"required"`
	Color          string          `json:"color"`
	CostPrice      decimal.Decimal `json:"cost_price" validate:"required,gt=0"`
	UnitsPerBox    int             `json:"units_per_box"`
	RepurchaseRule int             `json:"repurchase_rule"`
}

// PriceHistoryResponse historial de precios.
type PriceHistoryResponse struct {
	LastEditDate  string          `json:"last_edit_date"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	BestPrice     decimal.Decimal `json:"best_price"`
}

// ProductResponse producto con la cantidad calculada a partir de los lotes.
type ProductResponse struct {
	SKU            string                `json:"sku"`
	Name           string                `json:"name"`
	Brand          string                `json:"brand"`
	Color          string                `json:"color"`
	CostPrice      decimal.Decimal       `json:"cost_price"`
	BestPrice      decimal.Decimal       `json:"best_price"`
	UnitsPerBox    int                   `json:"units_per_box"`
	RepurchaseRule int                   `json:"repurchase_rule"`
	Quantity       int                   `json:"quantity"`
	History        *PriceHistoryResponse `json:"history,omitempty"`
}
