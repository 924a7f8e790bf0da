package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys para el principal autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// RoleStore contrato mínimo para re-leer el rol vigente desde el almacén de
// cuentas. Lo satisface repository.UserRepository; la interfaz chica evita el
// import circular y deja claro qué consulta el middleware.
type RoleStore interface {
	GetByID(id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga el principal
// (user_id, email, role) en c.Locals. El token es una capability: no se
// re-consulta la cuenta aquí; vale hasta su expiración (12h por defecto).
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, email, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireAdmin autoriza solo administradores. Re-lee el rol VIGENTE desde el
// almacén de cuentas en lugar de confiar en el claim del token: un cambio de
// rol surte efecto sin esperar a que el token expire. Debe usarse DESPUÉS de
// AuthMiddleware.
//
// Comportamiento:
//   - 403 Forbidden → la cuenta no existe o no es admin.
//   - 503 Service Unavailable → fallo de infraestructura al consultar.
func RequireAdmin(store RoleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id no encontrado en el token"})
		}
		user, err := store.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "no se pudo verificar el rol, intente más tarde"})
		}
		if user == nil || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo administradores"})
		}
		return c.Next()
	}
}

// currentIsAdmin re-lee el rol vigente del principal. Para rutas self-or-admin:
// el camino "self" se decide por el claim, el camino "admin" contra el almacén.
func currentIsAdmin(c *fiber.Ctx, store RoleStore) (bool, error) {
	user, err := store.GetByID(GetUserID(c))
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin(), nil
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del claim del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
