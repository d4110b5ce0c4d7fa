package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/api/handler"
	"github.com/proelectric/proadmin/internal/api/middleware"
	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

// Deps are the services the reference backend serves.
type Deps struct {
	Auth   ports.AuthService
	Orders ports.OrderService
	Users  ports.UserService
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// SecureCookies marks the session cookie HTTPS-only.
	SecureCookies bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Logger, d.SecureCookies)
	orderHandler := handler.NewOrderHandler(d.Orders)
	userHandler := handler.NewUserHandler(d.Users)
	healthHandler := handler.NewHealthHandler(d.Checks)
	auth := middleware.Auth(d.Auth)

	// --- Session ---
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	api := e.Group("/api", auth)
	api.GET("/user", authHandler.CurrentUser)

	// --- Orders ---
	api.GET("/orders", orderHandler.List)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.PUT("/orders/:id/status", orderHandler.UpdateStatus)

	// --- Staff directory ---
	staff := api.Group("/users", middleware.RBAC(domain.StaffManagers...))
	staff.GET("", userHandler.List)
	staff.POST("/:id/role", userHandler.UpdateRole)

	// --- Probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
