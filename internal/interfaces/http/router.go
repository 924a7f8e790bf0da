package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	PlaceOrder *orders.PlaceOrderUseCase
	OrderQuery *orders.QueryUseCase
	Roles      RoleStore
	JWTSecret  string
	UploadsDir string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authed := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireAdmin(deps.Roles)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)

	// Products: lectura pública, escritura solo admin
	productHandler := NewProductHandler(deps.ProductUC, deps.UploadsDir)
	app.Get("/products", productHandler.List)
	app.Get("/products/:id", productHandler.GetByID)
	app.Post("/products", authed, adminOnly, productHandler.Create)
	app.Post("/products/bulk", authed, adminOnly, productHandler.BulkCreate)
	app.Put("/products/:id", authed, adminOnly, productHandler.Update)
	app.Delete("/products/:id", authed, adminOnly, productHandler.Delete)
	app.Post("/products/:id/image", authed, adminOnly, productHandler.UploadImage)

	// Users (protegido; self-or-admin se resuelve en el handler)
	userHandler := NewUserHandler(deps.UserUC, deps.Roles)
	users := app.Group("/users", authed)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/password", userHandler.ChangePassword)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Orders (protegido)
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.OrderQuery, deps.Roles)
	ordersGroup := app.Group("/orders", authed)
	ordersGroup.Post("/", orderHandler.Place)
	ordersGroup.Get("/", adminOnly, orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	users.Get("/:id/orders", orderHandler.ListByUser)
}
