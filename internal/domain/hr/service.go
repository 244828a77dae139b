package hr

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/validate"
)

var ErrShiftOverlap = errors.New("staff member already has a shift in this window")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateStaff(ctx context.Context, st *Staff) error {
	st.FullName = strings.TrimSpace(st.FullName)
	if st.FullName == "" {
		return validate.New("full_name is required")
	}
	if st.JobTitle == "" {
		return validate.New("job_title is required")
	}
	st.Active = true
	return s.repo.CreateStaff(ctx, st)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.repo.GetStaff(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, st *Staff) error {
	if strings.TrimSpace(st.FullName) == "" {
		return validate.New("full_name is required")
	}
	return s.repo.UpdateStaff(ctx, st)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	return s.repo.ListStaff(ctx, limit, offset)
}

// Schedule adds a roster entry after checking the member exists, is active,
// and has no overlapping shift.
func (s *Service) Schedule(ctx context.Context, sh *Shift) error {
	if sh.StaffID == uuid.Nil {
		return validate.New("staff_id is required")
	}
	if sh.StartsAt.IsZero() || sh.EndsAt.IsZero() {
		return validate.New("starts_at and ends_at are required")
	}
	if !sh.EndsAt.After(sh.StartsAt) {
		return validate.New("ends_at must be after starts_at")
	}
	st, err := s.repo.GetStaff(ctx, sh.StaffID)
	if err != nil {
		return err
	}
	if !st.Active {
		return validate.New("staff member is inactive")
	}
	overlaps, err := s.repo.OverlappingShifts(ctx, sh.StaffID, sh.StartsAt, sh.EndsAt)
	if err != nil {
		return err
	}
	if overlaps > 0 {
		return ErrShiftOverlap
	}
	return s.repo.CreateShift(ctx, sh)
}

func (s *Service) ListShifts(ctx context.Context, staffID uuid.UUID, day time.Time, limit, offset int) ([]*Shift, int, error) {
	return s.repo.ListShifts(ctx, staffID, day, limit, offset)
}

func (s *Service) DeleteShift(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteShift(ctx, id)
}
