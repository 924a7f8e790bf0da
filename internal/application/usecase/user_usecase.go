package usecase

import (
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase casos de uso de cuentas: listado, consulta, actualización de
// nombre, rotación de password y borrado. La autorización (self-or-admin,
// admin-only) se resuelve en la capa HTTP; aquí solo la regla de
// currentPassword para no-admins.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todas las cuentas en proyección segura (sin password).
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene una cuenta por ID. Devuelve nil si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// UpdateName cambia el nombre visible de la cuenta.
func (uc *UserUseCase) UpdateName(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name == "" {
		in.Name = user.Name
	}
	if err := uc.repo.UpdateName(id, in.Name); err != nil {
		return nil, err
	}
	user.Name = in.Name
	return auth.ToUserResponse(user), nil
}

// ChangePassword rota el password de la cuenta. Si el actor no es admin debe
// presentar el password actual; el admin rota sin verificación previa.
func (uc *UserUseCase) ChangePassword(id string, actorIsAdmin bool, in dto.ChangePasswordRequest) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	if !actorIsAdmin {
		if in.CurrentPassword == "" || !auth.VerifyPassword(user.PasswordHash, in.CurrentPassword) {
			return domain.ErrInvalidInput
		}
	}
	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(id, hash)
}

// Delete elimina la cuenta. Los tokens ya emitidos siguen valiendo hasta su
// expiración (ventana de obsolescencia aceptada).
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}
