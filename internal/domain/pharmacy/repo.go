package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Prescription, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	CreateDispense(ctx context.Context, d *DispenseRecord) error
	ListDispenses(ctx context.Context, prescriptionID uuid.UUID) ([]*DispenseRecord, error)
}
