package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maozinhas/api/internal/container"
	"github.com/maozinhas/api/internal/handlers"
	"github.com/maozinhas/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// cors.New panics on an empty origin list
	if len(container.Config.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     container.Config.CorsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
		}))
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "maozinhas-api",
			})
		})
	}

	workerRoutes := v1.Group("/workers")
	{
		workerRoutes.GET("", handlers.ListWorkers(container.WorkerService, container.SearchService))
		workerRoutes.POST("", handlers.CreateWorker(container.WorkerService))
		workerRoutes.GET("/:id", handlers.GetWorker(container.WorkerService, container.StatsService))
		workerRoutes.PATCH("/:id", handlers.UpdateWorker(container.WorkerService))
		workerRoutes.POST("/:id/contact", handlers.ContactWorker(container.WorkerService, container.StatsService))
		workerRoutes.POST("/:id/portfolio", handlers.AddPortfolio(container.WorkerService))
	}

	userRoutes := v1.Group("/users")
	{
		userRoutes.GET("", handlers.FindUser(container.UserService))
		userRoutes.POST("", handlers.CreateUser(container.UserService))
		userRoutes.GET("/:id", handlers.GetUser(container.UserService))
		userRoutes.PATCH("/:id", handlers.UpdateUser(container.UserService))
		userRoutes.GET("/:id/favorites", handlers.ListFavourites(container.FavouritesService))
		userRoutes.POST("/:id/favorites", handlers.AddToFavourites(container.FavouritesService))
		userRoutes.DELETE("/:id/favorites", handlers.RemoveFromFavourite(container.FavouritesService))
		userRoutes.GET("/:id/search-history", handlers.ListSearchHistory(container.UserService))
		userRoutes.POST("/:id/search-history", handlers.AddSearchHistory(container.UserService))
	}

	adminRoutes := v1.Group("/admin")
	adminRoutes.Use(middleware.RequireRole(container.Tokens, container.Config.Auth.AdminRole, container.Logger))
	{
		adminRoutes.PATCH("/workers/:id/status", handlers.SetWorkerStatus(container.WorkerService))
	}

	return r
}
