package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/maozinhas/api/internal/memstore"
	"github.com/maozinhas/api/internal/models"
	"github.com/stretchr/testify/require"
)

type publishedEvent struct {
	channel string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, channel string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{channel: channel, payload: v})
	return p.err
}

func (p *recordingPublisher) channels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.channel)
	}
	return out
}

type stubUploader struct {
	calls [][]string
	err   error
}

func (u *stubUploader) Upload(_ context.Context, refs []string) ([]string, error) {
	u.calls = append(u.calls, refs)
	if u.err != nil {
		return nil, u.err
	}
	urls := make([]string, 0, len(refs))
	for _, r := range refs {
		urls = append(urls, "https://cdn.example.com/"+r)
	}
	return urls, nil
}

var errBoom = errors.New("boom")

// fixture is a set of services sharing one in-memory store.
type fixture struct {
	store     *memstore.Store
	events    *recordingPublisher
	media     *stubUploader
	workers   *WorkerService
	search    *SearchService
	stats     *StatsService
	favs      *FavouriteService
	users     *UserService
	clockTime time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	f := &fixture{
		store:     store,
		events:    &recordingPublisher{},
		media:     &stubUploader{},
		clockTime: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.clockTime }

	f.workers = NewWorkerService(store, f.events, f.media, nil)
	f.workers.now = clock
	f.search = NewSearchService(store)
	f.stats = NewStatsService(store)
	f.stats.now = clock
	f.favs = NewFavouriteService(store, store)
	f.favs.now = clock
	f.users = NewUserService(store)
	f.users.now = clock
	return f
}

type workerSpec struct {
	name      string
	city      string
	state     string
	category  models.Category
	status    models.WorkerStatus
	verified  bool
	available bool
	rating    float64
	reviews   int
	coords    *models.Coordinates
}

// seedWorker inserts a worker directly through the store, bypassing moderation.
func (f *fixture) seedWorker(t *testing.T, s workerSpec) *models.Worker {
	t.Helper()
	if s.category == "" {
		s.category = models.CategoryCasa
	}
	if s.status == "" {
		s.status = models.StatusApproved
	}
	w := models.NewWorker(models.CreateWorkerInput{
		UID:         "uid-" + s.name,
		Email:       s.name + "@x.com",
		Name:        s.name,
		Category:    s.category,
		Description: "servicos",
		Location:    &models.Location{City: s.city, State: s.state, Coordinates: s.coords},
	}, f.clockTime)
	w.Status = s.status
	w.Verified = s.verified
	w.Available = s.available
	w.Rating = s.rating
	w.ReviewCount = s.reviews

	created, err := f.store.InsertWorker(context.Background(), w)
	require.NoError(t, err)
	return created
}

func (f *fixture) seedSeeker(t *testing.T, email string) *models.Seeker {
	t.Helper()
	u, err := f.users.CreateSeeker(context.Background(), models.CreateSeekerInput{
		UID:      "uid-" + email,
		Email:    email,
		Name:     "Maria",
		UserType: models.UserTypeSeeker,
	})
	require.NoError(t, err)
	return u
}

func names(workers []*models.Worker) []string {
	out := make([]string, 0, len(workers))
	for _, w := range workers {
		out = append(out, w.Name)
	}
	return out
}

// queryRecorder passes reads through to the store and keeps the queries it saw.
type queryRecorder struct {
	*memstore.Store
	queries []models.WorkerQuery
}

func (r *queryRecorder) FindWorkers(ctx context.Context, q models.WorkerQuery) ([]*models.Worker, error) {
	r.queries = append(r.queries, q)
	return r.Store.FindWorkers(ctx, q)
}

// unavailableRepo fails every read the way the MongoDB gateway does when the
// database cannot be reached.
type unavailableRepo struct {
	*memstore.Store
}

func (unavailableRepo) FindWorkers(context.Context, models.WorkerQuery) ([]*models.Worker, error) {
	return nil, fmt.Errorf("%w: error finding workers: connection refused", models.ErrStoreUnavailable)
}

func (unavailableRepo) FindWorkerByID(context.Context, string) (*models.Worker, error) {
	return nil, fmt.Errorf("%w: error finding worker: connection refused", models.ErrStoreUnavailable)
}
