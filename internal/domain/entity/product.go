package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// ID se deriva determinísticamente del título (ver pkg/prodid); Stock nunca
// puede quedar negativo: es el único campo que disputa el motor de pedidos.
type Product struct {
	ID        string
	Title     string
	Price     decimal.Decimal
	Stock     int64
	Thumb     string // URL relativa de la imagen (/uploads/...), vacío si no tiene
	CreatedAt time.Time
	UpdatedAt time.Time
}
