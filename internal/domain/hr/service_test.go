package hr

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type mockRepo struct {
	staff  map[uuid.UUID]*Staff
	shifts map[uuid.UUID]*Shift
}

func newMockRepo() *mockRepo {
	return &mockRepo{staff: make(map[uuid.UUID]*Staff), shifts: make(map[uuid.UUID]*Shift)}
}

func (m *mockRepo) CreateStaff(_ context.Context, s *Staff) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	cp := *s
	m.staff[s.ID] = &cp
	return nil
}

func (m *mockRepo) GetStaff(_ context.Context, id uuid.UUID) (*Staff, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockRepo) UpdateStaff(_ context.Context, s *Staff) error {
	if _, ok := m.staff[s.ID]; !ok {
		return db.ErrNotFound
	}
	cp := *s
	m.staff[s.ID] = &cp
	return nil
}

func (m *mockRepo) ListStaff(_ context.Context, _, _ int) ([]*Staff, int, error) {
	var out []*Staff
	for _, s := range m.staff {
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) CreateShift(_ context.Context, sh *Shift) error {
	sh.ID = uuid.New()
	cp := *sh
	m.shifts[sh.ID] = &cp
	return nil
}

func (m *mockRepo) ListShifts(_ context.Context, staffID uuid.UUID, day time.Time, _, _ int) ([]*Shift, int, error) {
	var out []*Shift
	for _, sh := range m.shifts {
		if staffID != uuid.Nil && sh.StaffID != staffID {
			continue
		}
		if !day.IsZero() {
			y1, m1, d1 := day.Date()
			y2, m2, d2 := sh.StartsAt.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		cp := *sh
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) OverlappingShifts(_ context.Context, staffID uuid.UUID, start, end time.Time) (int, error) {
	count := 0
	for _, sh := range m.shifts {
		if sh.StaffID == staffID && sh.StartsAt.Before(end) && sh.EndsAt.After(start) {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) DeleteShift(_ context.Context, id uuid.UUID) error {
	if _, ok := m.shifts[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func newStaff(t *testing.T, svc *Service) *Staff {
	t.Helper()
	st := &Staff{FullName: "Grace Oduya", JobTitle: "charge nurse"}
	if err := svc.CreateStaff(context.Background(), st); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	return st
}

func TestSchedule_OverlapRejected(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	st := newStaff(t, svc)
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	first := &Shift{StaffID: st.ID, StartsAt: base, EndsAt: base.Add(8 * time.Hour)}
	if err := svc.Schedule(ctx, first); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	overlap := &Shift{StaffID: st.ID, StartsAt: base.Add(4 * time.Hour), EndsAt: base.Add(12 * time.Hour)}
	if err := svc.Schedule(ctx, overlap); err != ErrShiftOverlap {
		t.Errorf("err = %v, want ErrShiftOverlap", err)
	}

	// Back-to-back is fine.
	next := &Shift{StaffID: st.ID, StartsAt: base.Add(8 * time.Hour), EndsAt: base.Add(16 * time.Hour)}
	if err := svc.Schedule(ctx, next); err != nil {
		t.Errorf("Schedule back-to-back: %v", err)
	}
}

func TestSchedule_Validation(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	st := newStaff(t, svc)
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	bad := &Shift{StaffID: st.ID, StartsAt: base.Add(time.Hour), EndsAt: base}
	if err := svc.Schedule(ctx, bad); err == nil {
		t.Error("expected error for inverted window")
	}
	if err := svc.Schedule(ctx, &Shift{StaffID: uuid.New(), StartsAt: base, EndsAt: base.Add(time.Hour)}); !db.IsNotFound(err) {
		t.Errorf("err = %v, want not-found for unknown staff", err)
	}

	repo.staff[st.ID].Active = false
	if err := svc.Schedule(ctx, &Shift{StaffID: st.ID, StartsAt: base, EndsAt: base.Add(time.Hour)}); err == nil {
		t.Error("expected error for inactive staff")
	}
}

func TestCreateStaff_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.CreateStaff(context.Background(), &Staff{FullName: " ", JobTitle: "x"}); err == nil {
		t.Error("expected error for blank name")
	}
	if err := svc.CreateStaff(context.Background(), &Staff{FullName: "X"}); err == nil {
		t.Error("expected error for missing job title")
	}
	st := newStaff(t, svc)
	if !st.Active {
		t.Error("new staff should default to active")
	}
}
