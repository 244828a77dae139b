package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

// ErrAlreadyQueued is returned when a check-in would give a patient a second
// active queue entry. The database's partial unique index is the actual
// guard; this error is its application-level face.
var ErrAlreadyQueued = errors.New("patient already in active queue")

// ErrInvalidTransition is returned when a stage update proposes a
// (current, next) pair absent from the transition table.
var ErrInvalidTransition = validate.New("invalid stage transition")

type Service struct {
	repo Repository
	tx   db.TxManager
}

func NewService(repo Repository, tx db.TxManager) *Service {
	return &Service{repo: repo, tx: tx}
}

// CheckIn creates a new active queue entry for a patient. A patient with an
// entry still in an active status cannot check in again.
func (s *Service) CheckIn(ctx context.Context, e *Entry) error {
	if e.PatientID == uuid.Nil {
		return validate.New("patient_id is required")
	}
	if e.Status == "" {
		e.Status = StatusWaiting
	}
	if !ValidStatus(e.Status) {
		return validate.Errorf("invalid status %q", e.Status)
	}
	if e.CurrentStage == "" {
		e.CurrentStage = StageWaiting
	}
	if !ValidStage(e.CurrentStage) {
		return validate.Errorf("invalid stage %q", e.CurrentStage)
	}
	if e.Priority == 0 {
		e.Priority = DefaultPriority
	}
	if e.Priority < 1 || e.Priority > 5 {
		return validate.New("priority must be between 1 and 5")
	}
	if e.CheckInTime.IsZero() {
		e.CheckInTime = time.Now()
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if db.IsConflict(err) {
			return ErrAlreadyQueued
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

// ActiveForPatient returns the patient's single active entry, if any.
func (s *Service) ActiveForPatient(ctx context.Context, patientID uuid.UUID) (*Entry, error) {
	return s.repo.GetActiveByPatient(ctx, patientID)
}

func (s *Service) List(ctx context.Context, params map[string]string, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, params, limit, offset)
}

// SetStatus moves an entry between queue statuses, stamping called_at and
// completed_at as the entry passes through.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Entry, error) {
	if !ValidStatus(status) {
		return nil, validate.Errorf("invalid status %q", status)
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	e.Status = status
	switch status {
	case StatusCalled:
		e.CalledAt = &now
	case StatusCompleted:
		e.CompletedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetStage advances an entry to the next workflow stage. The transition must
// be present in the stage table; the change and its history row are written
// in one transaction.
func (s *Service) SetStage(ctx context.Context, id uuid.UUID, stage string, changedBy uuid.UUID) (*Entry, error) {
	if !ValidStage(stage) {
		return nil, validate.Errorf("invalid stage %q", stage)
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ValidStageTransition(e.CurrentStage, stage) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.CurrentStage, stage)
	}

	sc := &StageChange{
		QueueID:   id,
		FromStage: e.CurrentStage,
		ToStage:   stage,
		ChangedAt: time.Now(),
	}
	if changedBy != uuid.Nil {
		sc.ChangedBy = &changedBy
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStage(ctx, id, stage); err != nil {
			return err
		}
		return s.repo.AddStageChange(ctx, sc)
	})
	if err != nil {
		return nil, err
	}

	e.CurrentStage = stage
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) StageHistory(ctx context.Context, queueID uuid.UUID) ([]*StageChange, error) {
	return s.repo.GetStageHistory(ctx, queueID)
}
