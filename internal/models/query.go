package models

import "sort"

// WorkerQuery is the store-level predicate over worker records. Zero values
// mean "no constraint". The MongoDB gateway translates it into a filter
// document; the in-memory gateway evaluates Matches directly.
type WorkerQuery struct {
	UID           string
	Status        WorkerStatus
	Category      Category
	SubServices   []string
	City          string
	State         string
	MinRating     float64
	AvailableOnly bool
	VerifiedOnly  bool
	// SortByRating orders by rating desc, then reviewCount desc.
	SortByRating bool
	Skip         int
	Limit        int
}

func (q WorkerQuery) Matches(w *Worker) bool {
	if w == nil {
		return false
	}
	if q.UID != "" && w.UID != q.UID {
		return false
	}
	if q.Status != "" && w.Status != q.Status {
		return false
	}
	if q.Category != "" && w.Category != q.Category {
		return false
	}
	if len(q.SubServices) > 0 && !intersects(w.SubServices, q.SubServices) {
		return false
	}
	if q.City != "" && (w.Location == nil || w.Location.City != q.City) {
		return false
	}
	if q.State != "" && (w.Location == nil || w.Location.State != q.State) {
		return false
	}
	if q.MinRating > 0 && w.Rating < q.MinRating {
		return false
	}
	if q.AvailableOnly && !w.Available {
		return false
	}
	if q.VerifiedOnly && !w.Verified {
		return false
	}
	return true
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// SortByRating orders workers by rating desc, then reviewCount desc. The sort
// is stable, so equal keys keep the order the store returned them in.
func SortByRating(workers []*Worker) {
	sort.SliceStable(workers, func(i, j int) bool {
		if workers[i].Rating != workers[j].Rating {
			return workers[i].Rating > workers[j].Rating
		}
		return workers[i].ReviewCount > workers[j].ReviewCount
	})
}
