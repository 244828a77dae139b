package laboratory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error

	CreateResult(ctx context.Context, r *Result) error
	ListResults(ctx context.Context, orderID uuid.UUID) ([]*Result, error)
}
