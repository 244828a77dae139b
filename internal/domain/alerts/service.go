package alerts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrInvalidSeverity = validate.New("invalid alert severity")
	ErrAlreadyResolved = errors.New("alert is already resolved")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Raise(ctx context.Context, a *Alert) error {
	if a.Severity == "" {
		a.Severity = SeverityInfo
	}
	if !ValidSeverity(a.Severity) {
		return ErrInvalidSeverity
	}
	a.Message = strings.TrimSpace(a.Message)
	if a.Message == "" {
		return validate.New("alert message is required")
	}
	a.Status = StatusOpen
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Alert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*Alert, int, error) {
	if status != "" && status != StatusOpen && status != StatusAcknowledged && status != StatusResolved {
		return nil, 0, validate.New("invalid alert status")
	}
	return s.repo.List(ctx, status, limit, offset)
}

// Acknowledge marks an open alert as seen. Acknowledging twice is a no-op
// beyond the first actor.
func (s *Service) Acknowledge(ctx context.Context, id, userID uuid.UUID) (*Alert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}
	if a.Status == StatusAcknowledged {
		return a, nil
	}
	now := time.Now().UTC()
	a.Status = StatusAcknowledged
	a.AckedBy = &userID
	a.AckedAt = &now
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Resolve(ctx context.Context, id, userID uuid.UUID) (*Alert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}
	now := time.Now().UTC()
	a.Status = StatusResolved
	a.ResolvedBy = &userID
	a.ResolvedAt = &now
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
