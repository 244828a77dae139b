package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/validate"
)

var ErrInvalidStatus = validate.New("invalid appointment status")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return validate.New("patient_id is required")
	}
	if a.PractitionerID == uuid.Nil {
		return validate.New("practitioner_id is required")
	}
	if a.ScheduledAt.IsZero() {
		return validate.New("scheduled_at is required")
	}
	if a.ScheduledAt.Before(time.Now().Add(-time.Minute)) {
		return validate.New("scheduled_at must be in the future")
	}
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = DefaultDurationMinutes
	}
	a.Status = StatusScheduled
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Reschedule(ctx context.Context, a *Appointment) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing.Status == StatusCancelled || existing.Status == StatusCompleted {
		return validate.Errorf("cannot modify a %s appointment", existing.Status)
	}
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = existing.DurationMinutes
	}
	if a.PractitionerID == uuid.Nil {
		a.PractitionerID = existing.PractitionerID
	}
	if a.ScheduledAt.IsZero() {
		a.ScheduledAt = existing.ScheduledAt
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, f, limit, offset)
}
