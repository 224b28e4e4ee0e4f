// Package memstore is an in-process implementation of the worker and user
// gateways. It backs local development without MongoDB and the service tests.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/maozinhas/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu sync.RWMutex
	// insertion order, so queries without a sort are deterministic
	workerIDs []string
	workers   map[string]*models.Worker
	users     map[string]*models.Seeker
}

var (
	_ models.WorkerRepo = (*Store)(nil)
	_ models.UserRepo   = (*Store)(nil)
)

func New() *Store {
	return &Store{
		workers: make(map[string]*models.Worker),
		users:   make(map[string]*models.Seeker),
	}
}

func cloneLocation(l *models.Location) *models.Location {
	if l == nil {
		return nil
	}
	c := *l
	if l.Coordinates != nil {
		coords := *l.Coordinates
		c.Coordinates = &coords
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneWorker(w *models.Worker) *models.Worker {
	c := *w
	c.Location = cloneLocation(w.Location)
	c.SubServices = cloneStrings(w.SubServices)
	c.Portfolio = cloneStrings(w.Portfolio)
	if w.PriceRange != nil {
		pr := *w.PriceRange
		c.PriceRange = &pr
	}
	if w.Availability != nil {
		av := *w.Availability
		c.Availability = &av
	}
	return &c
}

func cloneSeeker(s *models.Seeker) *models.Seeker {
	c := *s
	c.Location = cloneLocation(s.Location)
	c.Favorites = cloneStrings(s.Favorites)
	if s.SearchHistory != nil {
		c.SearchHistory = append([]models.SearchEntry{}, s.SearchHistory...)
	}
	return &c
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

func (s *Store) InsertWorker(_ context.Context, worker *models.Worker) (*models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if worker.ID.IsZero() {
		worker.ID = primitive.NewObjectID()
	}
	id := worker.ID.Hex()
	if _, ok := s.workers[id]; !ok {
		s.workerIDs = append(s.workerIDs, id)
	}
	s.workers[id] = cloneWorker(worker)
	return cloneWorker(worker), nil
}

func (s *Store) FindWorkerByID(_ context.Context, id string) (*models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workers[id]
	if !ok {
		return nil, nil
	}
	return cloneWorker(w), nil
}

func (s *Store) FindWorkers(_ context.Context, q models.WorkerQuery) ([]*models.Worker, error) {
	s.mu.RLock()
	matched := []*models.Worker{}
	for _, id := range s.workerIDs {
		if w := s.workers[id]; q.Matches(w) {
			matched = append(matched, cloneWorker(w))
		}
	}
	s.mu.RUnlock()

	if q.SortByRating {
		models.SortByRating(matched)
	}
	if q.Skip > 0 {
		if q.Skip >= len(matched) {
			return []*models.Worker{}, nil
		}
		matched = matched[q.Skip:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// mutateWorker runs fn on the stored worker under the write lock and returns a copy of the result.
func (s *Store) mutateWorker(id string, fn func(w *models.Worker)) (*models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workers[id]
	if !ok {
		return nil, notFound("worker", id)
	}
	fn(w)
	return cloneWorker(w), nil
}

func (s *Store) UpdateWorker(_ context.Context, id string, patch *models.WorkerPatch, now time.Time) (*models.Worker, error) {
	return s.mutateWorker(id, func(w *models.Worker) {
		patch.ApplyTo(w)
		w.UpdatedAt = now
	})
}

func (s *Store) SetWorkerStatus(_ context.Context, id string, status models.WorkerStatus, verified *bool, now time.Time) (*models.Worker, error) {
	return s.mutateWorker(id, func(w *models.Worker) {
		w.Status = status
		if verified != nil {
			w.Verified = *verified
		}
		w.UpdatedAt = now
	})
}

func (s *Store) IncrementWorkerStat(_ context.Context, id string, stat models.StatField, now time.Time) error {
	_, err := s.mutateWorker(id, func(w *models.Worker) {
		switch stat {
		case models.StatViews:
			w.Stats.Views++
		case models.StatContacts:
			w.Stats.Contacts++
		}
		w.UpdatedAt = now
	})
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Store) AppendPortfolio(_ context.Context, id string, refs []string, now time.Time) (*models.Worker, error) {
	return s.mutateWorker(id, func(w *models.Worker) {
		w.Portfolio = append(w.Portfolio, refs...)
		w.UpdatedAt = now
	})
}

func (s *Store) InsertUser(_ context.Context, user *models.Seeker) (*models.Seeker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, fmt.Errorf("user %s: %w", user.Email, models.ErrConflict)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID.Hex()] = cloneSeeker(user)
	return cloneSeeker(user), nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.Seeker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneSeeker(u), nil
}

func (s *Store) FindUserByUID(_ context.Context, uid string) (*models.Seeker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UID == uid {
			return cloneSeeker(u), nil
		}
	}
	return nil, nil
}

func (s *Store) UserEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, patch *models.UserPatch, now time.Time) (*models.Seeker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	patch.ApplyTo(&u.UserBase)
	u.UpdatedAt = now
	return cloneSeeker(u), nil
}

// mutateSeeker mirrors the MongoDB filter on user_type: non-seekers are reported as absent.
func (s *Store) mutateSeeker(id string, fn func(u *models.Seeker)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || !u.IsSeeker() {
		return notFound("seeker", id)
	}
	fn(u)
	return nil
}

func (s *Store) AddFavourite(_ context.Context, userId, workerId string, now time.Time) error {
	return s.mutateSeeker(userId, func(u *models.Seeker) {
		for _, fav := range u.Favorites {
			if fav == workerId {
				u.UpdatedAt = now
				return
			}
		}
		u.Favorites = append(u.Favorites, workerId)
		u.UpdatedAt = now
	})
}

func (s *Store) RemoveFavourite(_ context.Context, userId, workerId string, now time.Time) error {
	return s.mutateSeeker(userId, func(u *models.Seeker) {
		kept := make([]string, 0, len(u.Favorites))
		for _, fav := range u.Favorites {
			if fav != workerId {
				kept = append(kept, fav)
			}
		}
		u.Favorites = kept
		u.UpdatedAt = now
	})
}

func (s *Store) AppendSearchHistory(_ context.Context, userId string, entry models.SearchEntry, now time.Time) error {
	return s.mutateSeeker(userId, func(u *models.Seeker) {
		u.SearchHistory = append(u.SearchHistory, entry)
		u.UpdatedAt = now
	})
}
