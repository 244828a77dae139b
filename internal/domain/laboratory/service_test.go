package laboratory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type mockRepo struct {
	orders    map[uuid.UUID]*Order
	results   map[uuid.UUID][]*Result
	resultErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		orders:  make(map[uuid.UUID]*Order),
		results: make(map[uuid.UUID][]*Result),
	}
}

func (m *mockRepo) CreateOrder(_ context.Context, o *Order) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockRepo) GetOrder(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockRepo) ListOrders(_ context.Context, patientID uuid.UUID, status string, _, _ int) ([]*Order, int, error) {
	var out []*Order
	for _, o := range m.orders {
		if patientID != uuid.Nil && o.PatientID != patientID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) UpdateOrderStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return db.ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *mockRepo) CreateResult(_ context.Context, r *Result) error {
	if m.resultErr != nil {
		return m.resultErr
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	cp := *r
	m.results[r.OrderID] = append(m.results[r.OrderID], &cp)
	return nil
}

func (m *mockRepo) ListResults(_ context.Context, orderID uuid.UUID) ([]*Result, error) {
	return m.results[orderID], nil
}

type fakeTxManager struct {
	rolledBack bool
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

func newOrder(t *testing.T, svc *Service) *Order {
	t.Helper()
	o := &Order{PatientID: uuid.New(), OrderedBy: uuid.New(), TestCode: "CBC"}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return o
}

func TestCreateOrder_Defaults(t *testing.T) {
	svc := NewService(newMockRepo(), &fakeTxManager{})
	o := newOrder(t, svc)
	if o.Status != StatusOrdered {
		t.Errorf("status = %q, want ordered", o.Status)
	}
	if o.TestName != "CBC" {
		t.Errorf("test name not defaulted from code: %q", o.TestName)
	}
}

func TestSetStatus_FollowsLifecycle(t *testing.T) {
	svc := NewService(newMockRepo(), &fakeTxManager{})
	ctx := context.Background()
	o := newOrder(t, svc)

	for _, status := range []string{StatusCollected, StatusInProgress} {
		updated, err := svc.SetStatus(ctx, o.ID, status)
		if err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	// Resulted is reached only through AttachResult.
	if _, err := svc.SetStatus(ctx, o.ID, StatusResulted); err == nil {
		t.Error("expected error setting resulted directly")
	}
	// Skipping a step is rejected.
	o2 := newOrder(t, svc)
	if _, err := svc.SetStatus(ctx, o2.ID, StatusInProgress); err == nil {
		t.Error("expected error skipping collected")
	}
}

func TestAttachResult_MarksOrderResulted(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &fakeTxManager{})
	ctx := context.Background()
	o := newOrder(t, svc)

	res := &Result{OrderID: o.ID, Value: "5.2", ResultedBy: uuid.New()}
	if err := svc.AttachResult(ctx, res); err != nil {
		t.Fatalf("AttachResult: %v", err)
	}
	if res.ResultedAt.IsZero() {
		t.Error("ResultedAt not stamped")
	}
	updated, _ := repo.GetOrder(ctx, o.ID)
	if updated.Status != StatusResulted {
		t.Errorf("order status = %q, want resulted", updated.Status)
	}

	// A second result on a resulted order is rejected.
	if err := svc.AttachResult(ctx, &Result{OrderID: o.ID, Value: "5.3"}); err != ErrOrderResulted {
		t.Errorf("err = %v, want ErrOrderResulted", err)
	}
}

func TestAttachResult_CancelledOrderRejected(t *testing.T) {
	svc := NewService(newMockRepo(), &fakeTxManager{})
	ctx := context.Background()
	o := newOrder(t, svc)
	if _, err := svc.SetStatus(ctx, o.ID, StatusCancelled); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := svc.AttachResult(ctx, &Result{OrderID: o.ID, Value: "1"}); err != ErrOrderCancelled {
		t.Errorf("err = %v, want ErrOrderCancelled", err)
	}
}

func TestAttachResult_InsertFailureRollsBack(t *testing.T) {
	repo := newMockRepo()
	tx := &fakeTxManager{}
	svc := NewService(repo, tx)
	ctx := context.Background()
	o := newOrder(t, svc)

	repo.resultErr = db.ErrConflict
	if err := svc.AttachResult(ctx, &Result{OrderID: o.ID, Value: "1"}); err == nil {
		t.Fatal("expected insert error")
	}
	if !tx.rolledBack {
		t.Error("transaction not rolled back")
	}
	current, _ := repo.GetOrder(ctx, o.ID)
	if current.Status == StatusResulted {
		t.Error("order marked resulted despite failed insert")
	}
}
