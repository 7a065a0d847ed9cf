package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/account-api/docs"
	"github.com/storefront/account-api/internal/api/handler"
	"github.com/storefront/account-api/internal/api/middleware"
	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

// Dependencies are the services and probes the HTTP layer is built from.
type Dependencies struct {
	AdminAuth    ports.AuthService
	CustomerAuth ports.AuthService
	Customers    ports.CustomerService
	// Health maps dependency names to readiness checks.
	Health map[string]handler.Pinger
	Logger zerolog.Logger
	// Registry collects HTTP metrics. Nil uses the prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	adminAuthHandler := handler.NewAdminAuthHandler(deps.AdminAuth)
	customerAuthHandler := handler.NewCustomerAuthHandler(deps.CustomerAuth, deps.Customers)
	adminCustomerHandler := handler.NewAdminCustomerHandler(deps.Customers)
	healthHandler := handler.NewHealthHandler(deps.Health)

	adminGuard := middleware.Auth(domain.KindAdmin, deps.AdminAuth)
	customerGuard := middleware.Auth(domain.KindCustomer, deps.CustomerAuth)
	adminAbility := middleware.Ability(domain.AbilityAdmin)

	// --- Admin routes ---
	e.POST("/admin/login", adminAuthHandler.Login)
	e.GET("/admin/logout", adminAuthHandler.Logout, adminGuard)
	e.POST("/admin/customer", adminCustomerHandler.Store, adminGuard, adminAbility)
	e.GET("/admin/customers", adminCustomerHandler.Index, adminGuard, adminAbility)
	e.PUT("/admin/customer/:id", adminCustomerHandler.Update, adminGuard, adminAbility)
	e.DELETE("/admin/customer/:id", adminCustomerHandler.Destroy, adminGuard, adminAbility)

	// --- Customer routes ---
	e.POST("/customer/register", customerAuthHandler.Register)
	e.POST("/customer/login", customerAuthHandler.Login)
	e.GET("/customer/logout", customerAuthHandler.Logout, customerGuard)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
