package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tuition_site/internal/model"
)

// Stats feeds the admin dashboard cards.
type Stats struct {
	Parents  model.StatusCounts `json:"parents"`
	Tutors   model.StatusCounts `json:"tutors"`
	Requests model.StatusCounts `json:"requests"`
	Totals   map[string]int     `json:"totals"`
}

type DashboardService struct {
	stores Stores
}

func NewDashboardService(stores Stores) *DashboardService {
	return &DashboardService{stores: stores}
}

// Stats returns counts for every known status, including zeros.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	parents, err := s.stores.Parents.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count parents: %w", err)
	}
	tutors, err := s.stores.Tutors.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tutors: %w", err)
	}
	requests, err := s.stores.Requests.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	stats := &Stats{
		Parents:  withZeros(parents, model.ParentStatuses),
		Tutors:   withZeros(tutors, model.TutorStatuses),
		Requests: withZeros(requests, model.RequestStatuses),
	}
	stats.Totals = map[string]int{
		string(model.KindParent):  stats.Parents.Total(),
		string(model.KindTutor):   stats.Tutors.Total(),
		string(model.KindRequest): stats.Requests.Total(),
	}
	return stats, nil
}

func withZeros[S ~string](counts model.StatusCounts, statuses []S) model.StatusCounts {
	out := make(model.StatusCounts, len(statuses))
	for _, s := range statuses {
		out[string(s)] = counts[string(s)]
	}
	// unknown statuses are kept as-is
	for k, v := range counts {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}
