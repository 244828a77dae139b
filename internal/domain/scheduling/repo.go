package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows appointment listings. Zero values mean "no constraint";
// Day is truncated to the calendar date.
type Filter struct {
	PatientID      uuid.UUID
	PractitionerID uuid.UUID
	Status         string
	Day            time.Time
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error)
}
