package beds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrBedOccupied    = errors.New("bed is already occupied")
	ErrBedNotOccupied = errors.New("bed is not occupied")
	ErrBedUnavailable = errors.New("bed is not available")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateWard(ctx context.Context, w *Ward) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return validate.New("ward name is required")
	}
	return s.repo.CreateWard(ctx, w)
}

func (s *Service) ListWards(ctx context.Context) ([]*Ward, error) {
	return s.repo.ListWards(ctx)
}

func (s *Service) DeleteWard(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteWard(ctx, id)
}

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if b.WardID == uuid.Nil {
		return validate.New("ward_id is required")
	}
	b.Label = strings.TrimSpace(b.Label)
	if b.Label == "" {
		return validate.New("bed label is required")
	}
	if b.Status == "" {
		b.Status = BedAvailable
	}
	if !ValidBedStatus(b.Status) {
		return validate.Errorf("invalid bed status %q", b.Status)
	}
	return s.repo.CreateBed(ctx, b)
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.repo.GetBed(ctx, id)
}

func (s *Service) ListBeds(ctx context.Context, wardID uuid.UUID, status string, limit, offset int) ([]*Bed, int, error) {
	if status != "" && !ValidBedStatus(status) {
		return nil, 0, validate.Errorf("invalid bed status %q", status)
	}
	return s.repo.ListBeds(ctx, wardID, status, limit, offset)
}

// Assign places a patient in an available bed.
func (s *Service) Assign(ctx context.Context, bedID, patientID uuid.UUID) (*Bed, error) {
	if patientID == uuid.Nil {
		return nil, validate.New("patient_id is required")
	}
	b, err := s.repo.GetBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	switch b.Status {
	case BedOccupied:
		return nil, ErrBedOccupied
	case BedMaintenance:
		return nil, ErrBedUnavailable
	}
	now := time.Now().UTC()
	b.Status = BedOccupied
	b.PatientID = &patientID
	b.AssignedAt = &now
	if err := s.repo.UpdateBed(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Release frees an occupied bed.
func (s *Service) Release(ctx context.Context, bedID uuid.UUID) (*Bed, error) {
	b, err := s.repo.GetBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if b.Status != BedOccupied {
		return nil, ErrBedNotOccupied
	}
	b.Status = BedAvailable
	b.PatientID = nil
	b.AssignedAt = nil
	if err := s.repo.UpdateBed(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBed(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBed(ctx, id)
}

func (s *Service) Occupancy(ctx context.Context) ([]*WardOccupancy, error) {
	return s.repo.Occupancy(ctx)
}
