package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea solicitada. Líneas duplicadas del mismo producto
// se agregan antes de validar stock.
type OrderItemRequest struct {
	ProductID string `json:"id"`
	Qty       int64  `json:"qty"`
}

// PlaceOrderRequest entrada para crear un pedido. Total lo declara el
// caller y solo se valida que no sea negativo.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// OrderItemResponse una línea del pedido persistido.
type OrderItemResponse struct {
	ProductID string `json:"id"`
	Qty       int64  `json:"qty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
}
