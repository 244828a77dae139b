package pharmacy

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrInvalidStatus  = validate.New("invalid prescription status")
	ErrNotDispensable = errors.New("prescription is not active")
)

type Service struct {
	repo Repository
	tx   db.TxManager
}

func NewService(repo Repository, tx db.TxManager) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) Prescribe(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return validate.New("patient_id is required")
	}
	p.Medication = strings.TrimSpace(p.Medication)
	if p.Medication == "" {
		return validate.New("medication is required")
	}
	if p.Dosage == "" {
		return validate.New("dosage is required")
	}
	if p.DurationDays != nil && *p.DurationDays <= 0 {
		return validate.New("duration_days must be positive")
	}
	p.Status = StatusActive
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Prescription, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, patientID, status, limit, offset)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusActive {
		return nil, ErrNotDispensable
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	p.Status = StatusCancelled
	return p, nil
}

// Dispense records the hand-over and marks the prescription dispensed,
// atomically.
func (s *Service) Dispense(ctx context.Context, d *DispenseRecord) error {
	if d.Quantity <= 0 {
		return validate.New("quantity must be positive")
	}
	p, err := s.repo.GetByID(ctx, d.PrescriptionID)
	if err != nil {
		return err
	}
	if p.Status != StatusActive {
		return ErrNotDispensable
	}
	if d.DispensedAt.IsZero() {
		d.DispensedAt = time.Now().UTC()
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateDispense(ctx, d); err != nil {
			return err
		}
		return s.repo.UpdateStatus(ctx, d.PrescriptionID, StatusDispensed)
	})
}

func (s *Service) Dispenses(ctx context.Context, prescriptionID uuid.UUID) ([]*DispenseRecord, error) {
	if _, err := s.repo.GetByID(ctx, prescriptionID); err != nil {
		return nil, err
	}
	return s.repo.ListDispenses(ctx, prescriptionID)
}
