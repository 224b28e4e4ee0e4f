package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/maozinhas/api/internal/connect"
	"github.com/maozinhas/api/internal/container"
	"github.com/maozinhas/api/internal/helpers"
	"github.com/maozinhas/api/internal/middleware"
	"github.com/maozinhas/api/internal/routes"
	"github.com/maozinhas/api/internal/services"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.logger
	logger.Info("Starting Maozinhas API server", "environment", a.cfg.Environment, "storage", a.cfg.StorageDriver)

	if a.repo != nil {
		if err := a.repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure indexes", "error", err)
		}
	}

	bus, err := connect.EventBus(a.cfg.RabbitMQ, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Error("Error closing event bus", "error", err)
		}
	}()

	var media services.MediaUploader
	cld, err := connect.Cloudinary(a.cfg.Cloudinary)
	if err != nil {
		return err
	}
	if cld != nil {
		media = helpers.NewCloudinaryUploader(cld, a.cfg.Cloudinary.Folder)
	} else {
		logger.Warn("Cloudinary is not configured, portfolio uploads are disabled")
	}

	var tokens middleware.TokenValidator
	validator, err := helpers.NewTokenValidator(ctx, a.cfg.Auth)
	switch {
	case errors.Is(err, helpers.ErrAuthDisabled):
		logger.Warn("token validation is not configured, moderation routes are disabled")
	case err != nil:
		return err
	default:
		defer validator.Close()
		tokens = validator
	}

	appContainer := container.NewContainer(logger, a.cfg, a.store, bus, media, tokens)
	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", a.cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to start", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
	return nil
}
