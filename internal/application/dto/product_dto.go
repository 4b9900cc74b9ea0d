package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Location string          `json:"location"`
	Supplier string          `json:"supplier"`
}

// UpdateProductRequest entrada parcial para actualizar un producto.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
	Price    *decimal.Decimal `json:"price"`
	Location *string          `json:"location"`
	Supplier *string          `json:"supplier"`
}

// CreatorResponse datos públicos del creador de un producto.
type CreatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit"`
	Price       decimal.Decimal  `json:"price"`
	Location    string           `json:"location"`
	Supplier    string           `json:"supplier,omitempty"`
	CreatedBy   *CreatorResponse `json:"createdBy,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	LastUpdated time.Time        `json:"lastUpdated"`
}
