package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/maozinhas/api/internal/models"
	"github.com/umahmood/haversine"
)

const (
	DefaultPageSize      = 10
	MaxPageSize          = 100
	DefaultNearbyLimit   = 10
	DefaultFeaturedLimit = 6
	MaxListLimit         = 100
	// candidates fetched per requested result before in-process filtering
	overFetchFactor = 2
)

type SearchService struct {
	workersRepo models.WorkerRepo
}

func NewSearchService(workersRepo models.WorkerRepo) *SearchService {
	return &SearchService{
		workersRepo: workersRepo,
	}
}

func clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

func clampLimit(limit, defaultLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Search returns one page of approved workers matching filters, ranked by
// rating then review count. Ties beyond those two keys keep store order.
func (ss *SearchService) Search(ctx context.Context, filters models.SearchFilters, page, pageSize int) (*models.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)
	if page-1 > math.MaxInt/pageSize {
		return nil, models.ValidationErrorf("page is out of range")
	}

	workers, err := ss.workersRepo.FindWorkers(ctx, models.WorkerQuery{
		Status:        models.StatusApproved,
		Category:      filters.Category,
		SubServices:   filters.SubServices,
		City:          filters.City,
		State:         filters.State,
		MinRating:     filters.MinRating,
		AvailableOnly: filters.AvailableOnly,
		VerifiedOnly:  filters.VerifiedOnly,
		SortByRating:  true,
		Skip:          (page - 1) * pageSize,
		Limit:         pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search workers: %w", err)
	}
	models.SortByRating(workers)

	return &models.SearchResult{
		Data:     workers,
		Total:    len(workers),
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(workers) == pageSize,
	}, nil
}

// Nearby queries the store by city only, then filters state and availability
// in process. Results may be fewer than the limit when too many candidates
// are filtered out.
func (ss *SearchService) Nearby(ctx context.Context, q models.NearbyQuery) ([]*models.Worker, error) {
	q.City = strings.TrimSpace(q.City)
	q.State = strings.TrimSpace(q.State)
	if q.City == "" || q.State == "" {
		return nil, models.ValidationErrorf("city and state are required")
	}
	q.Limit = clampLimit(q.Limit, DefaultNearbyLimit)
	if q.RadiusKm < 0 {
		return nil, models.ValidationErrorf("radiusKm cannot be negative")
	}

	candidates, err := ss.workersRepo.FindWorkers(ctx, models.WorkerQuery{
		Status:       models.StatusApproved,
		City:         q.City,
		Category:     q.Category,
		SortByRating: true,
		Limit:        q.Limit * overFetchFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby workers: %w", err)
	}

	local := models.WorkerQuery{State: q.State, AvailableOnly: true}
	workers := make([]*models.Worker, 0, len(candidates))
	for _, w := range candidates {
		if !local.Matches(w) {
			continue
		}
		if q.Origin != nil && q.RadiusKm > 0 && !withinRadius(w, *q.Origin, q.RadiusKm) {
			continue
		}
		workers = append(workers, w)
	}

	models.SortByRating(workers)
	if len(workers) > q.Limit {
		workers = workers[:q.Limit]
	}
	return workers, nil
}

// Featured returns approved, verified and available workers ranked by rating.
func (ss *SearchService) Featured(ctx context.Context, limit int) ([]*models.Worker, error) {
	limit = clampLimit(limit, DefaultFeaturedLimit)

	candidates, err := ss.workersRepo.FindWorkers(ctx, models.WorkerQuery{
		Status:       models.StatusApproved,
		VerifiedOnly: true,
		SortByRating: true,
		Limit:        limit * overFetchFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load featured workers: %w", err)
	}

	workers := make([]*models.Worker, 0, len(candidates))
	for _, w := range candidates {
		if w.Available {
			workers = append(workers, w)
		}
	}

	models.SortByRating(workers)
	if len(workers) > limit {
		workers = workers[:limit]
	}
	return workers, nil
}

func withinRadius(w *models.Worker, origin models.Coordinates, radiusKm float64) bool {
	if w.Location == nil || w.Location.Coordinates == nil {
		return false
	}
	_, km := haversine.Distance(
		haversine.Coord{Lat: origin.Latitude, Lon: origin.Longitude},
		haversine.Coord{Lat: w.Location.Coordinates.Latitude, Lon: w.Location.Coordinates.Longitude},
	)
	return km <= radiusKm
}
