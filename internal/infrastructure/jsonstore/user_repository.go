package jsonstore

import (
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre el documento JSON.
// La unicidad de email se verifica dentro de la misma sección exclusiva que
// inserta, así no hay ventana entre chequeo y escritura.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de cuentas.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := r.store.createUser(u); err != nil {
		return err
	}
	if err := r.store.persist(); err != nil {
		r.store.state = snap
		return err
	}
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.findUserByID(id), nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.findUserByEmail(email), nil
}

func (r *UserRepo) List() ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.User, 0, len(r.store.state.Users))
	for i := range r.store.state.Users {
		out = append(out, toUserEntity(r.store.state.Users[i]))
	}
	return out, nil
}

func (r *UserRepo) UpdateName(id, name string) error {
	return r.mutate(id, func(rec *userRecord) {
		rec.Name = name
	})
}

func (r *UserRepo) UpdatePassword(id, passwordHash string) error {
	return r.mutate(id, func(rec *userRecord) {
		rec.Password = passwordHash
	})
}

func (r *UserRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.state.Users {
		if r.store.state.Users[i].ID == id {
			snap := r.store.snapshot()
			r.store.state.Users = append(r.store.state.Users[:i], r.store.state.Users[i+1:]...)
			if err := r.store.persist(); err != nil {
				r.store.state = snap
				return err
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepo) mutate(id string, apply func(*userRecord)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.state.Users {
		if r.store.state.Users[i].ID == id {
			snap := r.store.snapshot()
			apply(&r.store.state.Users[i])
			if err := r.store.persist(); err != nil {
				r.store.state = snap
				return err
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}
