// Package api wires the HTTP surface: routing, request validation, error
// mapping, and metrics exposition. It is presentation glue over the session
// store; all state semantics live in internal/core/store.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/api/handler"
	"github.com/bowlapp/storefront/internal/api/middleware"
	"github.com/bowlapp/storefront/internal/core/ports"
)

// Deps carries everything the router needs.
type Deps struct {
	Store     ports.SessionStore
	Catalog   ports.CatalogGateway
	JWTSecret string
	Health    map[string]handler.Pinger
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bowlapp"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Store, d.JWTSecret, middleware.DefaultTokenTTL)
	catalogHandler := handler.NewCatalogHandler(d.Store, d.Catalog)
	cartHandler := handler.NewCartHandler(d.Store)
	orderHandler := handler.NewOrderHandler(d.Store)
	healthHandler := handler.NewHealthHandler(d.Health)
	authRequired := middleware.Auth(d.JWTSecret)

	// --- Auth ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Catalog & favorites (no session needed) ---
	e.GET("/v1/bowls", catalogHandler.ListBowls)
	e.GET("/v1/favorites", catalogHandler.ListFavorites)
	e.POST("/v1/favorites", catalogHandler.AddFavorite)
	e.DELETE("/v1/favorites/:id", catalogHandler.RemoveFavorite)
	e.DELETE("/v1/favorites", catalogHandler.ClearFavorites)

	// --- Cart ---
	e.GET("/v1/cart", cartHandler.GetCart)
	e.POST("/v1/cart", cartHandler.AddToCart)
	e.PATCH("/v1/cart/:id/quantity", cartHandler.UpdateQuantity)
	e.DELETE("/v1/cart/:id", cartHandler.RemoveItem)
	e.DELETE("/v1/cart", cartHandler.ClearCart)

	// --- Orders & points (session required) ---
	e.POST("/v1/orders", orderHandler.PlaceOrder, authRequired)
	e.GET("/v1/orders", orderHandler.ListOrders, authRequired)
	e.GET("/v1/points", orderHandler.GetPoints, authRequired)
	e.POST("/v1/points", orderHandler.AwardPoints, authRequired)

	// --- Probes & metrics ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
