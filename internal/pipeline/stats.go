package pipeline

import (
	"context"

	"selectiq/internal/domain"
)

// DashboardStats are the four dashboard counters.
type DashboardStats struct {
	TotalOffers           int64 `json:"total_offers"`
	TotalApplications     int64 `json:"total_applications"`
	PendingApplications   int64 `json:"pending_applications"`
	InterviewApplications int64 `json:"interview_applications"`
}

// Stats computes the dashboard aggregates. It holds no state of its own:
// four independent counts against the repositories, read-after-write
// consistent because every write commits through the same gateway first.
type Stats struct {
	offers domain.OfferRepository
	apps   domain.ApplicationRepository
}

func NewStats(offers domain.OfferRepository, apps domain.ApplicationRepository) *Stats {
	return &Stats{offers: offers, apps: apps}
}

func (s *Stats) Dashboard(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	var err error
	if out.TotalOffers, err = s.offers.Count(ctx); err != nil {
		return out, err
	}
	if out.TotalApplications, err = s.apps.Count(ctx); err != nil {
		return out, err
	}
	if out.PendingApplications, err = s.apps.CountByStatus(ctx, domain.AppStatusPending); err != nil {
		return out, err
	}
	if out.InterviewApplications, err = s.apps.CountByStatus(ctx, domain.AppStatusInterview); err != nil {
		return out, err
	}
	return out, nil
}
