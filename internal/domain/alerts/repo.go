package alerts

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)
	// List filters by status when non-empty; newest first.
	List(ctx context.Context, status string, limit, offset int) ([]*Alert, int, error)
	Update(ctx context.Context, a *Alert) error
}
