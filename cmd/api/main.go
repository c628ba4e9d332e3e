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
	_ "github.com/rodaplus/cotizador-api/docs"
	"github.com/rodaplus/cotizador-api/internal/application/auth"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/infrastructure/excel"
	infrapdf "github.com/rodaplus/cotizador-api/internal/infrastructure/pdf"
	"github.com/rodaplus/cotizador-api/internal/infrastructure/postgres"
	httpRouter "github.com/rodaplus/cotizador-api/internal/interfaces/http"
	"github.com/rodaplus/cotizador-api/internal/observability/metrics"
	"github.com/rodaplus/cotizador-api/pkg/config"
	"github.com/rodaplus/cotizador-api/pkg/logger"
)

// @title Cotizador API
// @version 1.0
// @description API de cotizaciones de llantas al mayoreo
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	existenciaRepo := postgres.NewExistenciaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoCotizacionGenerator(cfg.App.Name)
	exporter := excel.NewExistenciaExporter()

	cotizacionUC := usecase.NewCotizacionUseCase(txRunner, cotizacionRepo, productRepo, userRepo, pdfGenerator)
	busquedaUC := usecase.NewBusquedaUseCase(productRepo, priceRepo, userRepo)
	existenciaUC := usecase.NewExistenciaUseCase(existenciaRepo, productRepo, priceRepo, exporter)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Metrics.Enabled {
		metrics.Init()
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotizador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CotizacionUC: cotizacionUC,
		BusquedaUC:   busquedaUC,
		ExistenciaUC: existenciaUC,
		UserUC:       userUC,
		JWTSecret:    cfg.JWT.Secret,
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
