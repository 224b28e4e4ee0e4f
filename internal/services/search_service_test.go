package services

import (
	"context"
	"math"
	"testing"

	"github.com/maozinhas/api/internal/memstore"
	"github.com/maozinhas/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRanked(t *testing.T, workers []*models.Worker) {
	t.Helper()
	for i := 1; i < len(workers); i++ {
		prev, cur := workers[i-1], workers[i]
		require.GreaterOrEqual(t, prev.Rating, cur.Rating)
		if prev.Rating == cur.Rating {
			require.GreaterOrEqual(t, prev.ReviewCount, cur.ReviewCount)
		}
	}
}

func TestSearchOnlyApprovedAndRanked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedWorker(t, workerSpec{name: "a", city: "São Paulo", state: "SP", available: true, rating: 4.2, reviews: 10})
	f.seedWorker(t, workerSpec{name: "b", city: "São Paulo", state: "SP", available: true, rating: 4.8, reviews: 2})
	f.seedWorker(t, workerSpec{name: "c", city: "São Paulo", state: "SP", available: true, rating: 4.2, reviews: 30})
	f.seedWorker(t, workerSpec{name: "pending", city: "São Paulo", state: "SP", status: models.StatusPending, rating: 5})
	f.seedWorker(t, workerSpec{name: "suspended", city: "São Paulo", state: "SP", status: models.StatusSuspended, rating: 5})
	f.seedWorker(t, workerSpec{name: "rejected", city: "São Paulo", state: "SP", status: models.StatusRejected, rating: 5})

	res, err := f.search.Search(ctx, models.SearchFilters{}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a"}, names(res.Data))
	for _, w := range res.Data {
		assert.Equal(t, models.StatusApproved, w.Status)
	}
	assertRanked(t, res.Data)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.PageSize)
	assert.False(t, res.HasMore)
}

func TestSearchFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedWorker(t, workerSpec{name: "sp-casa", city: "São Paulo", state: "SP", available: true, verified: true, rating: 4.5})
	f.seedWorker(t, workerSpec{name: "sp-pets", city: "São Paulo", state: "SP", category: models.CategoryPets, available: true, rating: 4.9})
	f.seedWorker(t, workerSpec{name: "rj-casa", city: "Rio de Janeiro", state: "RJ", available: false, rating: 3.9})

	cases := []struct {
		name    string
		filters models.SearchFilters
		want    []string
	}{
		{"category", models.SearchFilters{Category: models.CategoryCasa}, []string{"sp-casa", "rj-casa"}},
		{"city", models.SearchFilters{City: "São Paulo"}, []string{"sp-pets", "sp-casa"}},
		{"state", models.SearchFilters{State: "RJ"}, []string{"rj-casa"}},
		{"min rating inclusive", models.SearchFilters{MinRating: 4.5}, []string{"sp-pets", "sp-casa"}},
		{"available only", models.SearchFilters{AvailableOnly: true}, []string{"sp-pets", "sp-casa"}},
		{"verified only", models.SearchFilters{VerifiedOnly: true}, []string{"sp-casa"}},
		{"no match", models.SearchFilters{City: "Curitiba"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := f.search.Search(ctx, tc.filters, 1, 10)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res.Data))
		})
	}
}

func TestSearchPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, r := range []float64{5, 4.5, 4, 3.5, 3} {
		f.seedWorker(t, workerSpec{name: string(rune('a' + i)), city: "São Paulo", state: "SP", available: true, rating: r})
	}

	page1, err := f.search.Search(ctx, models.SearchFilters{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(page1.Data))
	assert.True(t, page1.HasMore)

	page3, err := f.search.Search(ctx, models.SearchFilters{}, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, names(page3.Data))
	assert.False(t, page3.HasMore)
	assert.Equal(t, 1, page3.Total)

	// exactly full last page still reports hasMore
	exact, err := f.search.Search(ctx, models.SearchFilters{}, 1, 5)
	require.NoError(t, err)
	assert.True(t, exact.HasMore)

	defaults, err := f.search.Search(ctx, models.SearchFilters{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, DefaultPageSize, defaults.PageSize)

	capped, err := f.search.Search(ctx, models.SearchFilters{}, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, capped.PageSize)
}

func TestNearby(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedWorker(t, workerSpec{name: "sp1", city: "São Paulo", state: "SP", available: true, rating: 4.1})
	f.seedWorker(t, workerSpec{name: "sp2", city: "São Paulo", state: "SP", available: true, rating: 4.9})
	f.seedWorker(t, workerSpec{name: "sp3", city: "São Paulo", state: "SP", available: true, rating: 4.5})
	f.seedWorker(t, workerSpec{name: "rj", city: "São Paulo", state: "RJ", available: true, rating: 5})

	got, err := f.search.Nearby(ctx, models.NearbyQuery{City: "São Paulo", State: "SP", Category: models.CategoryCasa, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"sp2", "sp3", "sp1"}, names(got))
}

func TestNearbyFiltersAndLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedWorker(t, workerSpec{name: "busy", city: "Campinas", state: "SP", available: false, rating: 5})
	f.seedWorker(t, workerSpec{name: "pending", city: "Campinas", state: "SP", status: models.StatusPending, available: true, rating: 5})
	f.seedWorker(t, workerSpec{name: "pets", city: "Campinas", state: "SP", category: models.CategoryPets, available: true, rating: 4})
	f.seedWorker(t, workerSpec{name: "casa1", city: "Campinas", state: "SP", available: true, rating: 3})
	f.seedWorker(t, workerSpec{name: "casa2", city: "Campinas", state: "SP", available: true, rating: 4.5})

	got, err := f.search.Nearby(ctx, models.NearbyQuery{City: "Campinas", State: "SP", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"casa2", "pets"}, names(got))

	got, err = f.search.Nearby(ctx, models.NearbyQuery{City: "Campinas", State: "SP", Category: models.CategoryCasa, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"casa2", "casa1"}, names(got))

	_, err = f.search.Nearby(ctx, models.NearbyQuery{City: "Campinas"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestNearbyRadius(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// Praça da Sé as origin
	origin := &models.Coordinates{Latitude: -23.5505, Longitude: -46.6333}
	f.seedWorker(t, workerSpec{name: "paulista", city: "São Paulo", state: "SP", available: true, rating: 4,
		coords: &models.Coordinates{Latitude: -23.5614, Longitude: -46.6559}})
	f.seedWorker(t, workerSpec{name: "parelheiros", city: "São Paulo", state: "SP", available: true, rating: 5,
		coords: &models.Coordinates{Latitude: -23.8270, Longitude: -46.7280}})
	f.seedWorker(t, workerSpec{name: "no-coords", city: "São Paulo", state: "SP", available: true, rating: 4.5})

	got, err := f.search.Nearby(ctx, models.NearbyQuery{City: "São Paulo", State: "SP", Origin: origin, RadiusKm: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"paulista"}, names(got))

	all, err := f.search.Nearby(ctx, models.NearbyQuery{City: "São Paulo", State: "SP"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFeatured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedWorker(t, workerSpec{name: "top", city: "São Paulo", state: "SP", verified: true, available: true, rating: 4.9, reviews: 40})
	f.seedWorker(t, workerSpec{name: "second", city: "Rio de Janeiro", state: "RJ", verified: true, available: true, rating: 4.9, reviews: 12})
	f.seedWorker(t, workerSpec{name: "unverified", city: "São Paulo", state: "SP", available: true, rating: 5})
	f.seedWorker(t, workerSpec{name: "unavailable", city: "São Paulo", state: "SP", verified: true, available: false, rating: 5})
	f.seedWorker(t, workerSpec{name: "pending", city: "São Paulo", state: "SP", status: models.StatusPending, verified: true, available: true, rating: 5})

	got, err := f.search.Featured(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "second"}, names(got))

	one, err := f.search.Featured(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"top"}, names(one))
}

func TestSearchRejectsPageOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.seedWorker(t, workerSpec{name: "a", city: "São Paulo", state: "SP", available: true, rating: 4})

	_, err := f.search.Search(context.Background(), models.SearchFilters{}, math.MaxInt, 10)
	assert.ErrorIs(t, err, models.ErrValidation)

	// the last page whose offset still fits is a valid, empty page
	last, err := f.search.Search(context.Background(), models.SearchFilters{}, math.MaxInt/10+1, 10)
	require.NoError(t, err)
	assert.Empty(t, last.Data)
}

func TestListingLimitsAreCapped(t *testing.T) {
	repo := &queryRecorder{Store: memstore.New()}
	search := NewSearchService(repo)
	ctx := context.Background()

	_, err := search.Featured(ctx, math.MaxInt)
	require.NoError(t, err)
	_, err = search.Nearby(ctx, models.NearbyQuery{City: "São Paulo", State: "SP", Limit: math.MaxInt})
	require.NoError(t, err)

	require.Len(t, repo.queries, 2)
	for _, q := range repo.queries {
		assert.Equal(t, MaxListLimit*overFetchFactor, q.Limit)
	}
}

func TestSearchStoreUnavailable(t *testing.T) {
	search := NewSearchService(unavailableRepo{Store: memstore.New()})

	_, err := search.Search(context.Background(), models.SearchFilters{}, 1, 10)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	_, err = search.Featured(context.Background(), 0)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}
