package container

import (
	"log/slog"

	"github.com/maozinhas/api/internal/config"
	"github.com/maozinhas/api/internal/middleware"
	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/services"
)

// Store is a persistence gateway serving both collections.
type Store interface {
	models.WorkerRepo
	models.UserRepo
}

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	// Tokens guards the moderation routes; nil disables them.
	Tokens middleware.TokenValidator

	WorkerService     *services.WorkerService
	SearchService     *services.SearchService
	StatsService      *services.StatsService
	FavouritesService *services.FavouriteService
	UserService       *services.UserService
}

// NewContainer creates a new dependency injection container. events, media
// and tokens may be nil.
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	store Store,
	events services.EventPublisher,
	media services.MediaUploader,
	tokens middleware.TokenValidator,
) *Container {
	return &Container{
		Logger:            logger,
		Config:            cfg,
		Tokens:            tokens,
		WorkerService:     services.NewWorkerService(store, events, media, logger),
		SearchService:     services.NewSearchService(store),
		StatsService:      services.NewStatsService(store),
		FavouritesService: services.NewFavouriteService(store, store),
		UserService:       services.NewUserService(store),
	}
}
