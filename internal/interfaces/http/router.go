package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/access"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// AppConfig parámetros del servidor Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
}

// NewApp construye la app Fiber con el manejo de errores y los middlewares comunes.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log.Component("http")))
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	Tokens      TokenVerifier
	Policy      access.Policy // nil → access.DefaultPolicy()
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	policy := deps.Policy
	if policy == nil {
		policy = access.DefaultPolicy()
	}
	can := func(op access.Operation) fiber.Handler { return RequireOperation(policy, op) }

	api := app.Group("/api")
	authn := AuthMiddleware(deps.Tokens)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)

	// Products (protegido)
	products := api.Group("/products", authn)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", can(access.OpProductList), productHandler.List)
	products.Post("/", can(access.OpProductCreate), productHandler.Create)
	products.Get("/:id", can(access.OpProductGet), productHandler.GetByID)
	products.Put("/:id", can(access.OpProductUpdate), productHandler.Update)
	products.Delete("/:id", can(access.OpProductDelete), productHandler.Delete)

	// Dashboard (protegido, solo manager según la tabla)
	dashboard := api.Group("/dashboard", authn)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	dashboard.Get("/stats", can(access.OpDashboardStats), dashboardHandler.GetStats)
	dashboard.Get("/report", can(access.OpDashboardReport), dashboardHandler.DownloadReport)
}
