package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/mq"
)

var ErrMediaDisabled = errors.New("media uploads are not configured")

const portfolioUploadTimeout = 30 * time.Second

// MediaUploader stores portfolio media and returns the public URLs in input order.
type MediaUploader interface {
	Upload(ctx context.Context, refs []string) ([]string, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, channel string, v any) error
}

type WorkerService struct {
	workersRepo models.WorkerRepo
	events      EventPublisher
	media       MediaUploader
	logger      *slog.Logger
	now         func() time.Time
}

// NewWorkerService wires the worker record store. events and media may be nil.
func NewWorkerService(workersRepo models.WorkerRepo, events EventPublisher, media MediaUploader, logger *slog.Logger) *WorkerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerService{
		workersRepo: workersRepo,
		events:      events,
		media:       media,
		logger:      logger,
		now:         time.Now,
	}
}

func (ws *WorkerService) Create(ctx context.Context, in models.CreateWorkerInput) (*models.Worker, error) {
	in.Normalize()
	if err := models.Validate.Struct(in); err != nil {
		return nil, models.ValidationErrorf("invalid worker data provided: %v", err)
	}

	worker, err := ws.workersRepo.InsertWorker(ctx, models.NewWorker(in, ws.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	ws.publish(ctx, mq.ChannelWorkerRegistered, worker)
	return worker, nil
}

func (ws *WorkerService) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ValidationErrorf("worker id cannot be empty")
	}
	worker, err := ws.workersRepo.FindWorkerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, fmt.Errorf("worker %s: %w", id, models.ErrNotFound)
	}
	return worker, nil
}

// GetByAuthID returns the worker registered under the identity provider subject uid.
func (ws *WorkerService) GetByAuthID(ctx context.Context, uid string) (*models.Worker, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, models.ValidationErrorf("uid cannot be empty")
	}
	workers, err := ws.workersRepo.FindWorkers(ctx, models.WorkerQuery{UID: uid, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, fmt.Errorf("worker with uid %s: %w", uid, models.ErrNotFound)
	}
	return workers[0], nil
}

func (ws *WorkerService) Update(ctx context.Context, id string, patch *models.WorkerPatch) (*models.Worker, error) {
	patch.Normalize()
	if patch.IsEmpty() {
		return nil, models.ValidationErrorf("no data to update")
	}
	if err := models.Validate.Struct(patch); err != nil {
		return nil, models.ValidationErrorf("invalid worker data provided: %v", err)
	}
	return ws.workersRepo.UpdateWorker(ctx, id, patch, ws.now())
}

// SetStatus is the moderation action. Any moderation target may be assigned
// from any current status.
func (ws *WorkerService) SetStatus(ctx context.Context, id string, status models.WorkerStatus, verified *bool) (*models.Worker, error) {
	if !status.IsModerationTarget() {
		return nil, models.ValidationErrorf("status must be one of approved, rejected, suspended")
	}
	worker, err := ws.workersRepo.SetWorkerStatus(ctx, id, status, verified, ws.now())
	if err != nil {
		return nil, err
	}

	ws.logger.Info("worker status changed", "worker_id", id, "status", status)
	ws.publish(ctx, mq.ChannelWorkerStatusChanged, worker)
	return worker, nil
}

// AddPortfolio uploads media and appends the resulting URLs to the worker's portfolio.
func (ws *WorkerService) AddPortfolio(ctx context.Context, id string, refs []string) (*models.Worker, error) {
	if ws.media == nil {
		return nil, ErrMediaDisabled
	}
	if len(refs) == 0 {
		return nil, models.ValidationErrorf("media cannot be empty")
	}
	if _, err := ws.GetByID(ctx, id); err != nil {
		return nil, err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, portfolioUploadTimeout)
	defer cancel()

	urls, err := ws.media.Upload(uploadCtx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to upload portfolio media: %w", err)
	}
	if len(urls) == 0 {
		return nil, models.ValidationErrorf("media cannot be empty")
	}
	return ws.workersRepo.AppendPortfolio(ctx, id, urls, ws.now())
}

// publish is best effort: the write already succeeded, so failures are only logged.
func (ws *WorkerService) publish(ctx context.Context, channel string, w *models.Worker) {
	if ws.events == nil {
		return
	}
	event := mq.WorkerEvent{
		WorkerID:   w.ID.Hex(),
		UID:        w.UID,
		Name:       w.Name,
		Category:   string(w.Category),
		Status:     string(w.Status),
		Verified:   w.Verified,
		OccurredAt: ws.now(),
	}
	if err := ws.events.PublishJSON(ctx, channel, event); err != nil {
		ws.logger.Warn("failed to publish worker event", "channel", channel, "worker_id", event.WorkerID, "error", err)
	}
}
