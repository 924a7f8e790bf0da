package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El ID se deriva del título.
type CreateProductRequest struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// UpdateProductRequest patch parcial de un producto. Punteros nil = sin cambio.
// El título puede renombrarse pero el ID derivado original se conserva.
type UpdateProductRequest struct {
	Title *string          `json:"title"`
	Price *decimal.Decimal `json:"price"`
	Stock *int64           `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	Thumb     string          `json:"thumb,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BulkCreateResponse IDs creados por una carga masiva.
type BulkCreateResponse struct {
	Created []string `json:"created"`
}
