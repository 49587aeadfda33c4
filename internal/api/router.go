package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/ports"

	_ "github.com/storefront/shop-api/docs"
)

// Deps are the use cases and adapters the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Orders   ports.OrderService
	Products ports.ProductService
	Tokens   ports.TokenVerifier
	Health   map[string]handler.Check
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))

	authn := middleware.Authenticate(d.Tokens, d.Log)
	adminOnly := middleware.AdminOnly()
	userOrAdmin := middleware.UserOrAdmin()

	// --- Health checks and docs (no auth required) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Users ---
	authH := handler.NewAuthHandler(d.Auth)
	userH := handler.NewUserHandler(d.Users)
	v1.POST("/users/register", authH.Register)
	v1.POST("/users/login", authH.Login)
	v1.GET("/users", userH.List, authn, adminOnly)
	v1.GET("/users/get/count", userH.Count, authn, adminOnly)
	v1.POST("/users", userH.Create, authn, adminOnly)
	v1.GET("/users/:id", userH.Get, authn, userOrAdmin)
	v1.PUT("/users/:id", userH.Update, authn, userOrAdmin)
	v1.DELETE("/users/:id", userH.Delete, authn, adminOnly)

	// --- Orders ---
	orderH := handler.NewOrderHandler(d.Orders)
	v1.GET("/orders", orderH.List, authn, adminOnly)
	v1.POST("/orders", orderH.Create, authn, userOrAdmin)
	v1.GET("/orders/get/totalsales", orderH.TotalSales, authn, adminOnly)
	v1.GET("/orders/get/count", orderH.Count, authn, adminOnly)
	v1.GET("/orders/get/userorders/:userid", orderH.ListByUser, authn, userOrAdmin)
	v1.GET("/orders/:id", orderH.Get, authn, userOrAdmin)
	v1.GET("/orders/:id/events", orderH.Events, authn, userOrAdmin)
	v1.PUT("/orders/:id", orderH.UpdateStatus, authn, adminOnly)
	v1.DELETE("/orders/:id", orderH.Delete, authn, adminOnly)

	// --- Products ---
	productH := handler.NewProductHandler(d.Products)
	v1.GET("/products", productH.List)
	v1.GET("/products/:id", productH.Get)
	v1.POST("/products", productH.Create, authn, adminOnly)

	return e
}
