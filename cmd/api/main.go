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

	"github.com/jhoicas/panaderia-erp/internal/application/auth"
	"github.com/jhoicas/panaderia-erp/internal/application/catalog"
	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/application/finance"
	"github.com/jhoicas/panaderia-erp/internal/application/inventory"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/application/orders"
	"github.com/jhoicas/panaderia-erp/internal/application/sales"
	"github.com/jhoicas/panaderia-erp/internal/application/settings"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/apiclient"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
	infrapdf "github.com/jhoicas/panaderia-erp/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/panaderia-erp/internal/interfaces/http"
	"github.com/jhoicas/panaderia-erp/pkg/config"
	"github.com/jhoicas/panaderia-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	// Caché de colecciones remotas: Redis si está configurado, memoria si no.
	var store cachestore.Store
	if cfg.Cache.RedisURL != "" {
		rdb, err := cachestore.NewRedis(cfg.Cache.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = cachestore.NewRedisStore(rdb, cfg.Cache.TTL)
		log.Info().Msg("caché en Redis")
	} else {
		store = cachestore.NewMemoryStore(cfg.Cache.TTL)
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
		Backoff:    cfg.API.Backoff,
		Logger:     log,
	})
	// El BFF no guarda sesión: el 401 llega al navegador como SESSION_EXPIRED.
	client.OnUnauthorized(func(ctx context.Context) {
		log.Warn().Msg("la API remota rechazó el token")
	})

	runner := mutation.NewRunner(store, mutation.NewLogNotifier(log), log)

	settingsUC := settings.NewUseCase(client, store, runner, cfg.Currency.Primary, cfg.Currency.Secondary)
	salesUC := sales.NewUseCase(client, settingsUC, store, runner)

	// PDF: ficha de costo de receta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	costingUC := costing.NewUseCase(client, store, pdfGenerator, cfg.App.Business, cfg.Currency.Primary)
	catalogUC := catalog.NewUseCase(client, store, runner, costingUC)
	inventoryUC := inventory.NewUseCase(client, store, runner, costingUC)
	ordersUC := orders.NewUseCase(client, settingsUC, store, runner)
	financeUC := finance.NewUseCase(client, settingsUC, store, runner)
	authUC := auth.NewUseCase(client, store, runner, cfg.JWT.Secret, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Panadería ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SettingsUC:  settingsUC,
		SalesUC:     salesUC,
		CatalogUC:   catalogUC,
		CostingUC:   costingUC,
		InventoryUC: inventoryUC,
		OrdersUC:    ordersUC,
		FinanceUC:   financeUC,
		JWTSecret:   cfg.JWT.Secret,
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
