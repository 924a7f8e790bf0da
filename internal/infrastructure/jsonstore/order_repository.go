package jsonstore

import (
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.OrderRepository = (*txOrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre el documento JSON.
// Los pedidos nacen dentro de TxRunner.Run; este adaptador cubre las consultas.
type OrderRepo struct {
	store *Store
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Create(o *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := r.store.createOrder(o); err != nil {
		return err
	}
	if err := r.store.persist(); err != nil {
		r.store.state = snap
		return err
	}
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.state.Orders {
		if r.store.state.Orders[i].ID == id {
			return toOrderEntity(r.store.state.Orders[i]), nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) List() ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Order, 0, len(r.store.state.Orders))
	for i := range r.store.state.Orders {
		out = append(out, toOrderEntity(r.store.state.Orders[i]))
	}
	return out, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Order, 0)
	for i := range r.store.state.Orders {
		if r.store.state.Orders[i].UserID == userID {
			out = append(out, toOrderEntity(r.store.state.Orders[i]))
		}
	}
	return out, nil
}

// txOrderRepo variante atada a la transacción: asume el lock de Run tomado.
type txOrderRepo struct {
	store *Store
}

func (r *txOrderRepo) Create(o *entity.Order) error { return r.store.createOrder(o) }
func (r *txOrderRepo) GetByID(id string) (*entity.Order, error) {
	for i := range r.store.state.Orders {
		if r.store.state.Orders[i].ID == id {
			return toOrderEntity(r.store.state.Orders[i]), nil
		}
	}
	return nil, nil
}
func (r *txOrderRepo) List() ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.store.state.Orders))
	for i := range r.store.state.Orders {
		out = append(out, toOrderEntity(r.store.state.Orders[i]))
	}
	return out, nil
}
func (r *txOrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for i := range r.store.state.Orders {
		if r.store.state.Orders[i].UserID == userID {
			out = append(out, toOrderEntity(r.store.state.Orders[i]))
		}
	}
	return out, nil
}
