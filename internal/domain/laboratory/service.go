package laboratory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

var (
	ErrInvalidStatus  = validate.New("invalid lab order status")
	ErrOrderCancelled = errors.New("lab order is cancelled")
	ErrOrderResulted  = errors.New("lab order is already resulted")
)

// Forward status steps. Cancellation is allowed from any non-terminal state;
// resulted is reached by attaching a result, not by a status update.
var statusTransitions = map[string][]string{
	StatusOrdered:    {StatusCollected, StatusCancelled},
	StatusCollected:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCancelled},
}

type Service struct {
	repo Repository
	tx   db.TxManager
}

func NewService(repo Repository, tx db.TxManager) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) CreateOrder(ctx context.Context, o *Order) error {
	if o.PatientID == uuid.Nil {
		return validate.New("patient_id is required")
	}
	o.TestCode = strings.TrimSpace(o.TestCode)
	if o.TestCode == "" {
		return validate.New("test_code is required")
	}
	if o.TestName == "" {
		o.TestName = o.TestCode
	}
	o.Status = StatusOrdered
	return s.repo.CreateOrder(ctx, o)
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Order, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListOrders(ctx, patientID, status, limit, offset)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, next := range statusTransitions[o.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, validate.Errorf("cannot move lab order from %s to %s", o.Status, status)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

// AttachResult records a result and marks the order resulted, atomically.
func (s *Service) AttachResult(ctx context.Context, res *Result) error {
	if res.Value == "" {
		return validate.New("result value is required")
	}
	o, err := s.repo.GetOrder(ctx, res.OrderID)
	if err != nil {
		return err
	}
	switch o.Status {
	case StatusCancelled:
		return ErrOrderCancelled
	case StatusResulted:
		return ErrOrderResulted
	}
	if res.ResultedAt.IsZero() {
		res.ResultedAt = time.Now().UTC()
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateResult(ctx, res); err != nil {
			return err
		}
		return s.repo.UpdateOrderStatus(ctx, res.OrderID, StatusResulted)
	})
}

func (s *Service) Results(ctx context.Context, orderID uuid.UUID) ([]*Result, error) {
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListResults(ctx, orderID)
}
