package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrInvalidLevel    = validate.New("triage level must be between 1 and 5")
	ErrInvalidCategory = validate.New("invalid triage category")
)

// Service owns triage assessments and keeps queue priority in step with
// the assigned level. Assessment insert and priority update commit together.
type Service struct {
	repo  Repository
	queue QueuePrioritizer
	tx    db.TxManager
}

func NewService(repo Repository, queue QueuePrioritizer, tx db.TxManager) *Service {
	return &Service{repo: repo, queue: queue, tx: tx}
}

func (s *Service) CreateAssessment(ctx context.Context, a *Assessment) error {
	if a.PatientID == uuid.Nil {
		return validate.New("patient_id is required")
	}
	if !ValidLevel(a.TriageLevel) {
		return ErrInvalidLevel
	}
	if !ValidCategory(a.TriageCategory) {
		return ErrInvalidCategory
	}
	if a.ChiefComplaint == "" {
		return validate.New("chief_complaint is required")
	}
	if a.AssessedAt.IsZero() {
		a.AssessedAt = time.Now().UTC()
	}
	if a.QueueID == nil {
		return s.repo.Create(ctx, a)
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
		if err := s.queue.UpdatePriority(ctx, *a.QueueID, PriorityForLevel(a.TriageLevel)); err != nil {
			return fmt.Errorf("propagate priority to queue entry %s: %w", a.QueueID, err)
		}
		return nil
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateAssessment rewrites the clinical fields of an existing assessment and,
// when the assessment is linked to a queue entry, re-propagates the priority.
func (s *Service) UpdateAssessment(ctx context.Context, a *Assessment) error {
	if !ValidLevel(a.TriageLevel) {
		return ErrInvalidLevel
	}
	if !ValidCategory(a.TriageCategory) {
		return ErrInvalidCategory
	}
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.QueueID = existing.QueueID
	if a.QueueID == nil {
		return s.repo.Update(ctx, a)
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, a); err != nil {
			return err
		}
		return s.queue.UpdatePriority(ctx, *a.QueueID, PriorityForLevel(a.TriageLevel))
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
