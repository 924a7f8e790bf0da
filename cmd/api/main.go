package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// storeSet agrupa los repositorios y el runner transaccional de un backend.
type storeSet struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	txRunner orders.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer stores.close()

	if err := seedAdmin(cfg, stores.users, log); err != nil {
		log.Fatal().Err(err).Msg("sembrar cuenta admin")
	}

	authUC := auth.NewAuthUseCase(stores.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(stores.users)
	productUC := usecase.NewProductUseCase(stores.products, stores.txRunner)
	placeOrderUC := orders.NewPlaceOrderUseCase(stores.txRunner)
	orderQueryUC := orders.NewQueryUseCase(stores.orders)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// Solo se monta si el archivo generado está presente.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Tienda API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("crear directorio de uploads")
	}
	app.Static("/uploads", cfg.Uploads.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		ProductUC:  productUC,
		PlaceOrder: placeOrderUC,
		OrderQuery: orderQueryUC,
		Roles:      stores.users,
		JWTSecret:  cfg.JWT.Secret,
		UploadsDir: cfg.Uploads.Dir,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores selecciona el backend: PostgreSQL cuando DATABASE_URL está
// definido, documento JSON local en caso contrario.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storeSet, error) {
	if cfg.Store.UsePostgres() {
		log.Info().Msg("backend de almacenamiento: postgresql")
		if err := postgres.RunMigrations(cfg.Store.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &storeSet{
			users:    postgres.NewUserRepository(pool),
			products: postgres.NewProductRepository(pool),
			orders:   postgres.NewOrderRepository(pool),
			txRunner: postgres.NewTxRunner(pool),
			close:    pool.Close,
		}, nil
	}

	log.Info().Str("file", cfg.Store.DataFile).Msg("backend de almacenamiento: documento json")
	store, err := jsonstore.Open(cfg.Store.DataFile)
	if err != nil {
		return nil, err
	}
	return &storeSet{
		users:    jsonstore.NewUserRepository(store),
		products: jsonstore.NewProductRepository(store),
		orders:   jsonstore.NewOrderRepository(store),
		txRunner: jsonstore.NewTxRunner(store),
		close:    func() {},
	}, nil
}

// seedAdmin crea la cuenta administradora inicial si ADMIN_EMAIL y
// ADMIN_PASSWORD están configurados y el email aún no existe.
func seedAdmin(cfg *config.Config, users repository.UserRepository, log *logger.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}
	existing, err := users.GetByEmail(cfg.Admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(admin); err != nil {
		return err
	}
	log.Info().Str("email", cfg.Admin.Email).Msg("cuenta admin sembrada")
	return nil
}
