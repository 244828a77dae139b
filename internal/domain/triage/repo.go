package triage

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	Update(ctx context.Context, a *Assessment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Assessment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
}

// QueuePrioritizer is the slice of the queue repository the triage service
// needs: overwriting the priority of the linked queue entry. The queue
// package's repository satisfies it.
type QueuePrioritizer interface {
	UpdatePriority(ctx context.Context, id uuid.UUID, priority int) error
}
