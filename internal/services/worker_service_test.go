package services

import (
	"context"
	"testing"
	"time"

	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anaInput() models.CreateWorkerInput {
	return models.CreateWorkerInput{
		UID:         "self-1",
		Email:       "ana@x.com",
		Name:        "Ana",
		Category:    models.CategoryCasa,
		Description: "faxina",
	}
}

func TestCreateWorker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.workers.Create(ctx, anaInput())
	require.NoError(t, err)

	assert.False(t, w.ID.IsZero())
	assert.Equal(t, models.StatusPending, w.Status)
	assert.False(t, w.Verified)
	assert.True(t, w.Available)
	assert.Zero(t, w.Rating)
	assert.Zero(t, w.ReviewCount)
	assert.Equal(t, models.WorkerStats{}, w.Stats)
	assert.Equal(t, models.UserTypeWorker, w.UserType)
	assert.Equal(t, f.clockTime, w.CreatedAt)
	assert.Equal(t, w.CreatedAt, w.UpdatedAt)

	assert.Equal(t, []string{mq.ChannelWorkerRegistered}, f.events.channels())
	event := f.events.events[0].payload.(mq.WorkerEvent)
	assert.Equal(t, w.ID.Hex(), event.WorkerID)
	assert.Equal(t, "pending", event.Status)
}

func TestCreateWorkerValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*models.CreateWorkerInput){
		"uid":         func(in *models.CreateWorkerInput) { in.UID = "" },
		"email":       func(in *models.CreateWorkerInput) { in.Email = "" },
		"name":        func(in *models.CreateWorkerInput) { in.Name = " " },
		"category":    func(in *models.CreateWorkerInput) { in.Category = "" },
		"description": func(in *models.CreateWorkerInput) { in.Description = "" },
	} {
		t.Run(name, func(t *testing.T) {
			in := anaInput()
			mutate(&in)
			_, err := f.workers.Create(ctx, in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
	assert.Empty(t, f.events.channels())
}

func TestCreateWorkerPublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.events.err = errBoom

	w, err := f.workers.Create(context.Background(), anaInput())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, w.Status)
}

func TestGetWorker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.workers.Create(ctx, anaInput())
	require.NoError(t, err)

	got, err := f.workers.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = f.workers.GetByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, models.ErrNotFound)

	byUID, err := f.workers.GetByAuthID(ctx, "self-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUID.ID)

	_, err = f.workers.GetByAuthID(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.workers.GetByAuthID(ctx, " ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateWorker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.workers.Create(ctx, anaInput())
	require.NoError(t, err)

	_, err = f.workers.Update(ctx, created.ID.Hex(), &models.WorkerPatch{})
	require.ErrorIs(t, err, models.ErrValidation)
	assert.EqualError(t, err, "no data to update")

	f.clockTime = f.clockTime.Add(time.Hour)
	desc := "faxina e passar roupa"
	updated, err := f.workers.Update(ctx, created.ID.Hex(), &models.WorkerPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, f.clockTime, updated.UpdatedAt)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, err = f.workers.Update(ctx, "64b7f0c2a1b2c3d4e5f60718", &models.WorkerPatch{Description: &desc})
	assert.ErrorIs(t, err, models.ErrNotFound)

	bad := models.Category("mecanica")
	_, err = f.workers.Update(ctx, created.ID.Hex(), &models.WorkerPatch{Category: &bad})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.workers.Create(ctx, anaInput())
	require.NoError(t, err)

	verified := true
	approved, err := f.workers.SetStatus(ctx, created.ID.Hex(), models.StatusApproved, &verified)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.True(t, approved.Verified)

	suspended, err := f.workers.SetStatus(ctx, created.ID.Hex(), models.StatusSuspended, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, suspended.Status)
	assert.True(t, suspended.Verified)

	// any target is reachable from any status
	back, err := f.workers.SetStatus(ctx, created.ID.Hex(), models.StatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, back.Status)

	_, err = f.workers.SetStatus(ctx, created.ID.Hex(), models.StatusPending, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.workers.SetStatus(ctx, "64b7f0c2a1b2c3d4e5f60718", models.StatusApproved, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, []string{
		mq.ChannelWorkerRegistered,
		mq.ChannelWorkerStatusChanged,
		mq.ChannelWorkerStatusChanged,
		mq.ChannelWorkerStatusChanged,
	}, f.events.channels())
}

func TestAddPortfolio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.workers.Create(ctx, anaInput())
	require.NoError(t, err)

	w, err := f.workers.AddPortfolio(ctx, created.ID.Hex(), []string{"a.jpg", "b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, w.Portfolio)

	w, err = f.workers.AddPortfolio(ctx, created.ID.Hex(), []string{"c.jpg"})
	require.NoError(t, err)
	assert.Len(t, w.Portfolio, 3)

	_, err = f.workers.AddPortfolio(ctx, created.ID.Hex(), nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.workers.AddPortfolio(ctx, "64b7f0c2a1b2c3d4e5f60718", []string{"d.jpg"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Len(t, f.media.calls, 2)

	f.media.err = errBoom
	_, err = f.workers.AddPortfolio(ctx, created.ID.Hex(), []string{"e.jpg"})
	assert.ErrorIs(t, err, errBoom)

	noMedia := NewWorkerService(f.store, nil, nil, nil)
	_, err = noMedia.AddPortfolio(ctx, created.ID.Hex(), []string{"a.jpg"})
	assert.ErrorIs(t, err, ErrMediaDisabled)
}
