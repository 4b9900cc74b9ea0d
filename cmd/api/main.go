package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/access"
	infrapdf "github.com/jhoicas/commodities-api/internal/infrastructure/pdf"
	"github.com/jhoicas/commodities-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/commodities-api/internal/interfaces/http"
	"github.com/jhoicas/commodities-api/pkg/config"
	"github.com/jhoicas/commodities-api/pkg/jwt"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

func main() {
	// Sin JWT_SECRET (u otra config inválida) la aplicación no arranca.
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	tokens, err := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Minute, jwt.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	statsRepo := postgres.NewInventoryStatsRepository(pool)

	creds, err := auth.NewCredentialStore(userRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost))
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de credenciales")
	}
	authUC := auth.NewAuthUseCase(creds, userRepo, tokens)
	productUC := usecase.NewProductUseCase(productRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(statsRepo, appanalytics.DashboardConfig{
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		RecentLimit:       cfg.Dashboard.RecentLimit,
	})
	reportUC := appanalytics.NewReportUseCase(dashboardUC, infrapdf.NewStatsReportGenerator("Reporte de inventario - "+cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Commodities API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Tokens:      tokens,
		Policy:      access.DefaultPolicy(),
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
