package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos confirmados.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List() ([]*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
}
