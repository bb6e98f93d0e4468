package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/nasmaklabs/chauffeur-sub000/internal/handler"
	"github.com/nasmaklabs/chauffeur-sub000/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	VehicleHandler *handler.VehicleHandler
	QuoteHandler   *handler.QuoteHandler
	BookingHandler *handler.BookingHandler
	AdminHandler   *handler.AdminHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	AdminAPIToken  string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Vehicle catalogue.
		v1.GET("/vehicles", deps.VehicleHandler.GetAll)

		// Fare quotes.
		v1.POST("/quotes", deps.QuoteHandler.GetQuote)

		// Customer booking routes.
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("/track/:reference", deps.BookingHandler.TrackBooking)
		}

		// Admin routes (authenticated principal required).
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(deps.AdminAPIToken))
		{
			admin.GET("/bookings", deps.AdminHandler.ListBookings)
			admin.GET("/bookings/:id", deps.AdminHandler.GetBooking)
			admin.PATCH("/bookings/:id/status", deps.AdminHandler.UpdateStatus)
			admin.DELETE("/bookings/:id", deps.AdminHandler.DeleteBooking)
			admin.GET("/stats", deps.AdminHandler.GetStats)

			admin.POST("/users", deps.AdminHandler.CreateAdminUser)
			admin.GET("/users", deps.AdminHandler.ListAdminUsers)
			admin.DELETE("/users/:id", deps.AdminHandler.DeleteAdminUser)
		}
	}

	return router
}
