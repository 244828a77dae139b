package beds

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateWard(ctx context.Context, w *Ward) error
	ListWards(ctx context.Context) ([]*Ward, error)
	DeleteWard(ctx context.Context, id uuid.UUID) error

	CreateBed(ctx context.Context, b *Bed) error
	GetBed(ctx context.Context, id uuid.UUID) (*Bed, error)
	ListBeds(ctx context.Context, wardID uuid.UUID, status string, limit, offset int) ([]*Bed, int, error)
	UpdateBed(ctx context.Context, b *Bed) error
	DeleteBed(ctx context.Context, id uuid.UUID) error

	Occupancy(ctx context.Context) ([]*WardOccupancy, error)
}
