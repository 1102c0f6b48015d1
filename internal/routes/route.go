package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/barfly/server/internal/container"
	"github.com/barfly/server/internal/handlers"
	"github.com/barfly/server/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "barfly-api",
			})
		})

		// The live event channel; subscriptions are managed over the socket
		// itself, so no route guard applies here.
		v1.GET("/ws", handlers.LiveEvents(container.EventBus, container.Logger))
	}

	venueRoutes := v1.Group("/venues")
	{
		venueRoutes.GET("/search", handlers.SearchVenues(container.VenueService, container.Logger))
		venueRoutes.GET("/view/:venueId", handlers.ViewVenue(container.VenueService, container.Logger))
		// Chatter listing stays public, matching the read-only surface.
		venueRoutes.GET("/chatters/:venueId", handlers.ListChatters(container.ChatterService, container.Logger))
	}

	protected := venueRoutes.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))
	{
		protected.GET("/attending/:venueId", handlers.IsAttending(container.VenueService, container.Logger))
		protected.PUT("/toggleAttend/:venueId", handlers.ToggleAttend(container.VenueService, container.Logger))
		protected.POST("/chatter/:venueId", handlers.PostChatter(container.ChatterService, container.Logger))
	}

	return r
}
