package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem una línea del pedido. ProductID es referencia débil: si el
// producto se borra después, el pedido conserva el ID como puntero histórico.
type OrderItem struct {
	ProductID string
	Qty       int64
}

// Order representa un pedido confirmado. Inmutable una vez creado: no hay
// máquina de estados (cancelación, reembolso) en el alcance del sistema.
type Order struct {
	ID        string // "ord-" + uuid
	UserID    string
	Items     []OrderItem
	Total     decimal.Decimal
	CreatedAt time.Time
}
