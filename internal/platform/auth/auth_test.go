package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type mockUserFetcher struct {
	users map[uuid.UUID]*UserInfo
}

func (m *mockUserFetcher) FetchUser(_ context.Context, id uuid.UUID) (*UserInfo, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func newTestFetcher(u *UserInfo) *mockUserFetcher {
	return &mockUserFetcher{users: map[uuid.UUID]*UserInfo{u.ID: u}}
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	uid := uuid.New()

	token, err := issuer.Issue(uid, RoleNurse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != uid.String() {
		t.Errorf("expected subject %s, got %s", uid, claims.Subject)
	}
	if claims.Role != RoleNurse {
		t.Errorf("expected role nurse, got %s", claims.Role)
	}
}

func TestParse_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)
	token, err := issuer.Issue(uuid.New(), RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer([]byte("another-secret-another-secret-xx"), time.Hour)

	token, _ := issuer.Issue(uuid.New(), RoleAdmin)
	if _, err := other.Parse(token); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

func doRequest(mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	user := &UserInfo{ID: uuid.New(), Role: RolePhysician, Active: true}
	token, _ := issuer.Issue(user.ID, user.Role)

	rec := doRequest(Middleware(issuer, newTestFetcher(user)), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	rec := doRequest(Middleware(issuer, &mockUserFetcher{}), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	rec := doRequest(Middleware(issuer, &mockUserFetcher{}), "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_UnknownUser(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	token, _ := issuer.Issue(uuid.New(), RoleNurse)

	rec := doRequest(Middleware(issuer, &mockUserFetcher{users: map[uuid.UUID]*UserInfo{}}), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_DisabledUser(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	user := &UserInfo{ID: uuid.New(), Role: RoleNurse, Active: false}
	token, _ := issuer.Issue(user.ID, user.Role)

	rec := doRequest(Middleware(issuer, newTestFetcher(user)), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func requireRoleRequest(role string, allowed ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireRole_Allowed(t *testing.T) {
	rec := requireRoleRequest(RoleNurse, RolePhysician, RoleNurse)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_AdminAlwaysPasses(t *testing.T) {
	rec := requireRoleRequest(RoleAdmin, RoleBillingClerk)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	rec := requireRoleRequest(RoleReceptionist, RolePharmacist)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("expected mismatch for wrong password")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("expected error for short password")
	}
}
