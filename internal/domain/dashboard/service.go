package dashboard

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary assembles the full snapshot. One failing aggregate fails the whole
// request; the board is either current or absent, never partly stale.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		sum Summary
		err error
	)
	if sum.Queue.Active, err = s.repo.ActiveQueueCount(ctx); err != nil {
		return nil, fmt.Errorf("active queue count: %w", err)
	}
	if sum.Queue.ByStage, err = s.repo.QueueByStage(ctx); err != nil {
		return nil, fmt.Errorf("queue by stage: %w", err)
	}
	if sum.Queue.ByPriority, err = s.repo.QueueByPriority(ctx); err != nil {
		return nil, fmt.Errorf("queue by priority: %w", err)
	}
	if sum.BedOccupancy, err = s.repo.BedOccupancy(ctx); err != nil {
		return nil, fmt.Errorf("bed occupancy: %w", err)
	}
	if sum.Appointments, err = s.repo.AppointmentsToday(ctx); err != nil {
		return nil, fmt.Errorf("appointments today: %w", err)
	}
	if sum.RevenueCents, err = s.repo.RevenueToday(ctx); err != nil {
		return nil, fmt.Errorf("revenue today: %w", err)
	}
	if sum.OpenAlerts, err = s.repo.OpenAlertCount(ctx); err != nil {
		return nil, fmt.Errorf("open alert count: %w", err)
	}
	return &sum, nil
}
