package connect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/maozinhas/api/internal/config"
	"github.com/maozinhas/api/internal/mq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBConnect opens and pings a client. The caller owns it and must call
// MongoDBDisconnect at shutdown.
func MongoDBConnect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	fullUri := strings.Replace(cfg.MongoDBURI, "<password>", cfg.MongoDBPassword, 1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fullUri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

func MongoDBDisconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	return nil
}

// Cloudinary returns nil when no credentials are configured.
func Cloudinary(cfg config.CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}

// EventBus connects to RabbitMQ when a URL is configured and falls back to
// in-process delivery otherwise.
func EventBus(cfg config.RabbitMQConfig, logger *slog.Logger) (*mq.MQ, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		logger.Warn("RABBITMQ_URL not set, worker events are discarded unless subscribed in process")
		return mq.New(mq.NewMemoryBackend()), nil
	}
	client, err := mq.NewRabbitMQClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return mq.New(client), nil
}
