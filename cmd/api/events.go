package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maozinhas/api/internal/config"
	"github.com/maozinhas/api/internal/connect"
	"github.com/maozinhas/api/internal/mq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail worker registration and moderation events from RabbitMQ",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.RabbitMQ.URL) == "" {
			return errors.New("events needs RABBITMQ_URL")
		}
		logger := setupLogger(cfg)

		bus, err := connect.EventBus(cfg.RabbitMQ, logger)
		if err != nil {
			return err
		}
		defer bus.Close()

		g, ctx := errgroup.WithContext(ctx)
		for _, channel := range []string{mq.ChannelWorkerRegistered, mq.ChannelWorkerStatusChanged} {
			channel := channel
			g.Go(func() error {
				return bus.Subscribe(ctx, channel, func(_ context.Context, msg mq.Message) error {
					var event mq.WorkerEvent
					if err := json.Unmarshal(msg.Data, &event); err != nil {
						logger.Warn("dropping malformed worker event", "channel", channel, "message_id", msg.ID, "error", err)
						return nil
					}
					logger.Info("worker event",
						"channel", channel,
						"worker_id", event.WorkerID,
						"name", event.Name,
						"status", event.Status,
						"verified", event.Verified,
						"occurred_at", event.OccurredAt,
					)
					return nil
				})
			})
		}

		logger.Info("listening for worker events")
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
