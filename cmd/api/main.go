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

	"github.com/jhoicas/Restobar-api/internal/application/auth"
	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/application/purchasing"
	"github.com/jhoicas/Restobar-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Restobar-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Restobar-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Restobar-api/internal/interfaces/http"
	"github.com/jhoicas/Restobar-api/pkg/config"
	"github.com/jhoicas/Restobar-api/pkg/logger"
)

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
	pool, err := postgres.NewPool(ctx, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepo(pool)
	trxRepo := postgres.NewTransactionRepo(pool)
	orderRepo := postgres.NewPurchaseOrderRepo(pool)
	categoryRepo := postgres.NewCategoryRepo(pool)
	supplierRepo := postgres.NewSupplierRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := inventory.NewEngine(txRunner)
	intakeUC := inventory.NewIntakeUseCase(engine)
	queryUC := inventory.NewQueryUseCase(itemRepo, trxRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(itemRepo)
	purchasingUC := purchasing.NewUseCase(txRunner, engine, orderRepo, itemRepo, supplierRepo)

	orderPDFGenerator := infrapdf.NewMarotoOrderGenerator(cfg.App.BusinessName)
	orderPDFUC := purchasing.NewPDFUseCase(orderRepo, supplierRepo, itemRepo, orderPDFGenerator)

	itemUC := usecase.NewItemUseCase(itemRepo, trxRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:          itemUC,
		CategoryUC:      categoryUC,
		SupplierUC:      supplierUC,
		IntakeUC:        intakeUC,
		QueryUC:         queryUC,
		ReplenishmentUC: replenishmentUC,
		PurchasingUC:    purchasingUC,
		OrderPDFUC:      orderPDFUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
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
