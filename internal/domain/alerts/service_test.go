package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type mockRepo struct {
	alerts map[uuid.UUID]*Alert
}

func newMockRepo() *mockRepo {
	return &mockRepo{alerts: make(map[uuid.UUID]*Alert)}
}

func (m *mockRepo) Create(_ context.Context, a *Alert) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	cp := *a
	m.alerts[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Alert, error) {
	a, ok := m.alerts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, status string, _, _ int) ([]*Alert, int, error) {
	var out []*Alert
	for _, a := range m.alerts {
		if status != "" && a.Status != status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) Update(_ context.Context, a *Alert) error {
	if _, ok := m.alerts[a.ID]; !ok {
		return db.ErrNotFound
	}
	cp := *a
	m.alerts[a.ID] = &cp
	return nil
}

func raise(t *testing.T, svc *Service) *Alert {
	t.Helper()
	a := &Alert{Severity: SeverityWarning, Source: "queue", Message: "queue depth above 20", CreatedBy: uuid.New()}
	if err := svc.Raise(context.Background(), a); err != nil {
		t.Fatalf("Raise: %v", err)
	}
	return a
}

func TestRaise(t *testing.T) {
	svc := NewService(newMockRepo())
	a := raise(t, svc)
	if a.Status != StatusOpen {
		t.Errorf("status = %q, want open", a.Status)
	}

	// Severity defaults to info.
	b := &Alert{Message: "fyi", CreatedBy: uuid.New()}
	if err := svc.Raise(context.Background(), b); err != nil {
		t.Fatalf("Raise: %v", err)
	}
	if b.Severity != SeverityInfo {
		t.Errorf("severity = %q, want info", b.Severity)
	}

	if err := svc.Raise(context.Background(), &Alert{Severity: "panic", Message: "x"}); err != ErrInvalidSeverity {
		t.Errorf("err = %v, want ErrInvalidSeverity", err)
	}
	if err := svc.Raise(context.Background(), &Alert{Message: "  "}); err == nil {
		t.Error("expected error for blank message")
	}
}

func TestAcknowledgeAndResolve(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	a := raise(t, svc)
	userID := uuid.New()

	acked, err := svc.Acknowledge(ctx, a.ID, userID)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if acked.Status != StatusAcknowledged || acked.AckedBy == nil || *acked.AckedBy != userID {
		t.Errorf("ack state wrong: %+v", acked)
	}

	// Acknowledging again keeps the first actor.
	again, err := svc.Acknowledge(ctx, a.ID, uuid.New())
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if *again.AckedBy != userID {
		t.Error("second acknowledge overwrote the first actor")
	}

	resolved, err := svc.Resolve(ctx, a.ID, userID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != StatusResolved || resolved.ResolvedAt == nil {
		t.Errorf("resolve state wrong: %+v", resolved)
	}

	if _, err := svc.Resolve(ctx, a.ID, userID); err != ErrAlreadyResolved {
		t.Errorf("err = %v, want ErrAlreadyResolved", err)
	}
	if _, err := svc.Acknowledge(ctx, a.ID, userID); err != ErrAlreadyResolved {
		t.Errorf("err = %v, want ErrAlreadyResolved", err)
	}
}

func TestList_FilterByStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	a := raise(t, svc)
	raise(t, svc)
	if _, err := svc.Resolve(ctx, a.ID, uuid.New()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	_, total, err := svc.List(ctx, StatusOpen, 20, 0)
	if err != nil || total != 1 {
		t.Errorf("open total = %d (err %v), want 1", total, err)
	}
	_, total, err = svc.List(ctx, "", 20, 0)
	if err != nil || total != 2 {
		t.Errorf("all total = %d (err %v), want 2", total, err)
	}
	if _, _, err := svc.List(ctx, "bogus", 20, 0); err == nil {
		t.Error("expected error for invalid status filter")
	}
}
