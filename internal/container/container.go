package container

import (
	"log/slog"

	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barfly/server/internal/bus"
	"github.com/barfly/server/internal/models"
	"github.com/barfly/server/internal/services"
	"github.com/barfly/server/internal/yelp"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	EventBus       *bus.Bus
	UserService    *services.UserService
	VenueService   *services.VenueService
	ChatterService *services.ChatterService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	yelpClient *yelp.Client,
) *Container {
	// Initialize repositories
	mongo := models.MongodbNewRepo(mongoDBClient)
	eventBus := bus.New(logger)

	userService := services.NewUserService(supabaseClient)
	venueService := services.NewVenueService(mongo, yelpClient, eventBus, logger)
	chatterService := services.NewChatterService(mongo, mongo, eventBus, logger)

	return &Container{
		Logger:         logger,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		EventBus:       eventBus,
		UserService:    userService,
		VenueService:   venueService,
		ChatterService: chatterService,
	}
}
