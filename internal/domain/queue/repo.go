package queue

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*Entry, error)
	List(ctx context.Context, params map[string]string, limit, offset int) ([]*Entry, int, error)
	UpdateStatus(ctx context.Context, e *Entry) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage string) error
	UpdatePriority(ctx context.Context, id uuid.UUID, priority int) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddStageChange(ctx context.Context, sc *StageChange) error
	GetStageHistory(ctx context.Context, queueID uuid.UUID) ([]*StageChange, error)
}
