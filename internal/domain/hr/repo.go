package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateStaff(ctx context.Context, s *Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error)
	UpdateStaff(ctx context.Context, s *Staff) error
	ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error)

	CreateShift(ctx context.Context, sh *Shift) error
	ListShifts(ctx context.Context, staffID uuid.UUID, day time.Time, limit, offset int) ([]*Shift, int, error)
	OverlappingShifts(ctx context.Context, staffID uuid.UUID, start, end time.Time) (int, error)
	DeleteShift(ctx context.Context, id uuid.UUID) error
}
