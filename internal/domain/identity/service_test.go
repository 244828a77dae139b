package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/db"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return db.ErrConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockRepo) List(_ context.Context, _, _ int) ([]*User, int, error) {
	var out []*User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return db.ErrNotFound
	}
	u.Active = active
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	issuer := auth.NewTokenIssuer([]byte("test-secret-for-identity-service!"), time.Hour)
	return NewService(repo, issuer), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Nurse@Clinic.test", "s3cret-pass", "Pat Nurse", auth.RoleNurse)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "nurse@clinic.test" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "s3cret-pass" || u.PasswordHash == "" {
		t.Error("password stored without hashing")
	}

	token, logged, err := svc.Login(ctx, "nurse@clinic.test", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || logged.ID != u.ID {
		t.Error("login did not return token and user")
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, "doc@clinic.test", "passw0rd!", "Doc", auth.RolePhysician)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "doc@clinic.test", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@clinic.test", "passw0rd!"); err != ErrInvalidCredentials {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}

	repo.users[u.ID].Active = false
	if _, _, err := svc.Login(ctx, "doc@clinic.test", "passw0rd!"); err != ErrAccountDisabled {
		t.Errorf("disabled account: err = %v, want ErrAccountDisabled", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "passw0rd!", "X", auth.RoleNurse); err == nil {
		t.Error("expected error for invalid email")
	}
	if _, err := svc.Register(ctx, "a@b.test", "short", "X", auth.RoleNurse); err == nil {
		t.Error("expected error for short password")
	}
	if _, err := svc.Register(ctx, "a@b.test", "passw0rd!", "X", "janitor"); err != ErrInvalidRole {
		t.Error("expected ErrInvalidRole for unknown role")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "dup@clinic.test", "passw0rd!", "A", auth.RoleNurse); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "DUP@clinic.test", "passw0rd!", "B", auth.RoleNurse)
	if !db.IsConflict(err) {
		t.Errorf("err = %v, want conflict", err)
	}
}

func TestFetchUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, "fetch@clinic.test", "passw0rd!", "F", auth.RoleReceptionist)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	info, err := svc.FetchUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("FetchUser: %v", err)
	}
	if info.ID != u.ID || info.Role != auth.RoleReceptionist || !info.Active {
		t.Errorf("unexpected user info: %+v", info)
	}
	if _, err := svc.FetchUser(ctx, uuid.New()); !db.IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}
