package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/orders"
)

// OrderHandler maneja la compra y la consulta de pedidos. Todas las rutas
// requieren token; el listado global además pasa por RequireAdmin.
type OrderHandler struct {
	place *orders.PlaceOrderUseCase
	query *orders.QueryUseCase
	roles RoleStore
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(place *orders.PlaceOrderUseCase, query *orders.QueryUseCase, roles RoleStore) *OrderHandler {
	return &OrderHandler{place: place, query: query, roles: roles}
}

// Place godoc
// @Summary      Comprar un carrito
// @Description  Valida stock de todas las líneas y lo descuenta en una sola
// @Description  transacción; si una línea falla no se modifica nada.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "items y total"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.place.PlaceOrder(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar todos los pedidos (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un pedido (dueño o admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out != nil && out.UserID == GetUserID(c) {
		return c.JSON(out)
	}
	// Para quien no es dueño, un pedido ajeno y uno inexistente responden
	// idéntico: la ruta no revela qué IDs existen.
	if out != nil {
		isAdmin, err := currentIsAdmin(c, h.roles)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "no se pudo verificar el rol, intente más tarde"})
		}
		if isAdmin {
			return c.JSON(out)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
}

// ListByUser godoc
// @Summary      Pedidos de una cuenta (self o admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {array}   dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /users/{id}/orders [get]
func (h *OrderHandler) ListByUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != GetUserID(c) {
		isAdmin, err := currentIsAdmin(c, h.roles)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "no se pudo verificar el rol, intente más tarde"})
		}
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
	}
	out, err := h.query.ListByUser(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
