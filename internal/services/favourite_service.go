package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maozinhas/api/internal/models"
)

// FavouriteService maintains the set of worker ids stored on each seeker.
type FavouriteService struct {
	userRepo    models.UserRepo
	workersRepo models.WorkerRepo
	now         func() time.Time
}

func NewFavouriteService(userRepo models.UserRepo, workersRepo models.WorkerRepo) *FavouriteService {
	return &FavouriteService{
		userRepo:    userRepo,
		workersRepo: workersRepo,
		now:         time.Now,
	}
}

func validateFavouriteIDs(seekerId, workerId string) error {
	if strings.TrimSpace(seekerId) == "" {
		return models.ValidationErrorf("user id cannot be empty")
	}
	if strings.TrimSpace(workerId) == "" {
		return models.ValidationErrorf("workerId is required")
	}
	return nil
}

// Add is idempotent: adding a present id leaves the set unchanged.
func (fs *FavouriteService) Add(ctx context.Context, seekerId, workerId string) error {
	if err := validateFavouriteIDs(seekerId, workerId); err != nil {
		return err
	}
	if err := fs.userRepo.AddFavourite(ctx, seekerId, strings.TrimSpace(workerId), fs.now()); err != nil {
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// Remove is idempotent: removing an absent id leaves the set unchanged.
func (fs *FavouriteService) Remove(ctx context.Context, seekerId, workerId string) error {
	if err := validateFavouriteIDs(seekerId, workerId); err != nil {
		return err
	}
	if err := fs.userRepo.RemoveFavourite(ctx, seekerId, strings.TrimSpace(workerId), fs.now()); err != nil {
		return fmt.Errorf("failed to remove favourite: %w", err)
	}
	return nil
}

// List returns the favourite worker ids. Unknown users and non-seekers have none.
func (fs *FavouriteService) List(ctx context.Context, seekerId string) ([]string, error) {
	user, err := fs.userRepo.FindUserByID(ctx, seekerId)
	if err != nil {
		return nil, err
	}
	if !user.IsSeeker() || user.Favorites == nil {
		return []string{}, nil
	}
	return user.Favorites, nil
}

// ListResolved loads the favourite workers, skipping ids that no longer resolve.
func (fs *FavouriteService) ListResolved(ctx context.Context, seekerId string) ([]*models.Worker, error) {
	ids, err := fs.List(ctx, seekerId)
	if err != nil {
		return nil, err
	}

	workers := make([]*models.Worker, 0, len(ids))
	for _, id := range ids {
		w, err := fs.workersRepo.FindWorkerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if w != nil {
			workers = append(workers, w)
		}
	}
	return workers, nil
}
