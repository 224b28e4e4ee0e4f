package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/maozinhas/api/internal/config"
	"github.com/maozinhas/api/internal/connect"
	"github.com/maozinhas/api/internal/container"
	"github.com/maozinhas/api/internal/memstore"
	"github.com/maozinhas/api/internal/models"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

// rootCmd runs the API server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "maozinhas",
	Short: "Worker directory API for the Maozinhas marketplace",
	Long: `Worker directory API for the Maozinhas marketplace. Usage:

	maozinhas serve
	maozinhas seed
	maozinhas indexes
	maozinhas events
`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	_ = godotenv.Load(".env.local")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every subcommand needs: configuration, a logger and the
// record store selected by STORAGE_DRIVER.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  container.Store
	repo   *models.MongodbRepo
	mongo  *mongo.Client
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a := &app{cfg: cfg, logger: setupLogger(cfg)}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		a.logger.Warn("using in-memory storage, data is lost on restart")
		a.store = memstore.New()
	default:
		client, err := connect.MongoDBConnect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBName)
		a.mongo = client
		a.repo = models.MongodbNewRepo(client, cfg.MongoDBName)
		a.store = a.repo
	}
	return a, nil
}

func (a *app) close() {
	if err := connect.MongoDBDisconnect(a.mongo); err != nil {
		a.logger.Error("Error disconnecting from MongoDB", "error", err)
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})
	}

	return slog.New(handler)
}
