package orders

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del backend de
// almacenamiento, pasando repositorios atados a esa transacción. Las
// mutaciones se confirman todas juntas al retorno normal de fn y se descartan
// completas ante cualquier error: es el contrato de atomicidad del motor de
// pedidos y de la carga masiva de catálogo.
//
// Backend relacional: transacción pgx con bloqueo por fila (FOR UPDATE).
// Backend documento: sección exclusiva sobre el estado completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
