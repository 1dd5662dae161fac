package router

import (
	"log"

	"github.com/anonto42/fairnet/backend/internal/feed"
	"github.com/anonto42/fairnet/backend/internal/handlers"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, feedService *feed.Service) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Identity routes
	identityHandler := handlers.NewIdentityHandler(feedService)
	identityHandler.RegisterIdentityRoutes(api)
	log.Println("Identity routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(feedService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	log.Println("All routes configured.")
}
