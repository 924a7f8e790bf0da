package auth_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/jsonstore"
)

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return auth.NewAuthUseCase(jsonstore.NewUserRepository(store), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "tienda-api-test",
	})
}

func registerAna(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	out, err := uc.RegisterUser(dto.RegisterRequest{
		Name:      "Ana",
		LastName:  "García",
		BirthDate: "1990-04-12",
		Email:     "ana@example.com",
		Password:  "secreta123",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func TestRegisterUser_CreaCuentaUser(t *testing.T) {
	uc := newAuthUC(t)
	out := registerAna(t, uc)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, entity.RoleUser, out.Role, "el registro público nunca crea admins")
	require.NotNil(t, out.BirthDate)
	assert.Equal(t, "1990-04-12", out.BirthDate.Format("2006-01-02"))
}

func TestRegisterUser_EmailInvalido(t *testing.T) {
	uc := newAuthUC(t)
	for _, email := range []string{"", "sin-arroba", "a@b", "con espacios@x.com"} {
		_, err := uc.RegisterUser(dto.RegisterRequest{Name: "X", Email: email, Password: "p"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "email=%q", email)
	}
}

func TestRegisterUser_FechaInvalida(t *testing.T) {
	uc := newAuthUC(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "p", BirthDate: "12/04/1990",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(t)
	registerAna(t, uc)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Name: "Otra Ana", Email: "ana@example.com", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_RoundTrip(t *testing.T) {
	uc := newAuthUC(t)
	created := registerAna(t, uc)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)
	assert.Equal(t, entity.RoleUser, out.User.Role)
}

// Email inexistente y password incorrecto deben ser indistinguibles para el
// caller: mismo valor de error en ambos casos.
func TestLogin_NoRevelaQueFallo(t *testing.T) {
	uc := newAuthUC(t)
	registerAna(t, uc)

	_, errBadPass := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	_, errNoUser := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "secreta123"})

	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.Equal(t, errBadPass, errNoUser)
}

func TestHashVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("secreta123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", hash, "el hash nunca es el texto en claro")

	assert.True(t, auth.VerifyPassword(hash, "secreta123"))
	assert.False(t, auth.VerifyPassword(hash, "otra"))
}
