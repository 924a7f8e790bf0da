package usecase_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/jsonstore"
)

func newUserUC(t *testing.T) (*usecase.UserUseCase, *jsonstore.UserRepo) {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	repo := jsonstore.NewUserRepository(store)
	return usecase.NewUserUseCase(repo), repo
}

func seedUser(t *testing.T, repo *jsonstore.UserRepo, email, password string) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         "Ana",
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestUserList_NoExponePasswords(t *testing.T) {
	uc, repo := newUserUC(t)
	seedUser(t, repo, "ana@example.com", "secreta")
	seedUser(t, repo, "luis@example.com", "otra")

	out, err := uc.List()
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestUpdateName(t *testing.T) {
	uc, repo := newUserUC(t)
	u := seedUser(t, repo, "ana@example.com", "secreta")

	out, err := uc.UpdateName(u.ID, dto.UpdateUserRequest{Name: "Ana María"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
}

func TestUpdateName_Inexistente(t *testing.T) {
	uc, _ := newUserUC(t)
	_, err := uc.UpdateName("nadie", dto.UpdateUserRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Un no-admin solo rota su password presentando el actual.
func TestChangePassword_NoAdminRequierePasswordActual(t *testing.T) {
	uc, repo := newUserUC(t)
	u := seedUser(t, repo, "ana@example.com", "secreta")

	err := uc.ChangePassword(u.ID, false, dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta", NewPassword: "nueva",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ChangePassword(u.ID, false, dto.ChangePasswordRequest{
		NewPassword: "nueva",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "omitir currentPassword tampoco vale")

	err = uc.ChangePassword(u.ID, false, dto.ChangePasswordRequest{
		CurrentPassword: "secreta", NewPassword: "nueva",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(got.PasswordHash, "nueva"))
	assert.False(t, auth.VerifyPassword(got.PasswordHash, "secreta"))
}

// El admin rota sin presentar el password vigente.
func TestChangePassword_AdminNoNecesitaPasswordActual(t *testing.T) {
	uc, repo := newUserUC(t)
	u := seedUser(t, repo, "ana@example.com", "secreta")

	err := uc.ChangePassword(u.ID, true, dto.ChangePasswordRequest{NewPassword: "reseteada"})
	require.NoError(t, err)

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(got.PasswordHash, "reseteada"))
}

func TestChangePassword_NuevoVacio(t *testing.T) {
	uc, repo := newUserUC(t)
	u := seedUser(t, repo, "ana@example.com", "secreta")

	err := uc.ChangePassword(u.ID, true, dto.ChangePasswordRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteUser(t *testing.T) {
	uc, repo := newUserUC(t)
	u := seedUser(t, repo, "ana@example.com", "secreta")

	require.NoError(t, uc.Delete(u.ID))

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, uc.Delete(u.ID), domain.ErrUserNotFound)
}
