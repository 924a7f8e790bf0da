package orders

import (
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// QueryUseCase consultas de pedidos fuera de transacción.
type QueryUseCase struct {
	repo repository.OrderRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.OrderRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// GetByID obtiene un pedido por ID. Devuelve nil si no existe.
func (uc *QueryUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// List devuelve todos los pedidos (solo admin en la capa HTTP).
func (uc *QueryUseCase) List() ([]dto.OrderResponse, error) {
	orders, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

// ListByUser devuelve los pedidos de un usuario.
func (uc *QueryUseCase) ListByUser(userID string) ([]dto.OrderResponse, error) {
	orders, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

func toResponses(in []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(in))
	for _, o := range in {
		out = append(out, *ToOrderResponse(o))
	}
	return out
}
