package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository puerto de persistencia para cuentas de usuario.
// Los métodos Get* devuelven (nil, nil) cuando la entidad no existe.
type UserRepository interface {
	// Create persiste un nuevo usuario. Devuelve domain.ErrEmailAlreadyExists
	// si el email ya está registrado.
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
	// UpdateName cambia el nombre visible de la cuenta.
	UpdateName(id, name string) error
	// UpdatePassword rota el hash de password.
	UpdatePassword(id, passwordHash string) error
	Delete(id string) error
}
