package triage

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/triage", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assessmentBody(queueID uuid.UUID) string {
	return fmt.Sprintf(`{"patient_id":%q,"queue_id":%q,"triage_level":2,"triage_category":"emergent","chief_complaint":"chest pain","assessed_by":%q}`,
		uuid.New(), queueID, uuid.New())
}

// A foreign key violation from the driver must not reach the client. The
// response is a plain 500 and the cause stays on the HTTPError for the
// request logger.
func TestCreateHandler_DriverErrorNotExposed(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = &pgconn.PgError{
		Code:    "23503",
		Message: `insert or update on table "triage_assessment" violates foreign key constraint "triage_assessment_patient_id_fkey"`,
	}
	queueID := uuid.New()
	h := NewHandler(NewService(repo, newMockQueue(queueID), &fakeTxManager{}))

	c, _ := postJSON(t, assessmentBody(queueID))
	err := h.Create(c)
	if err == nil {
		t.Fatal("expected an error response")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error = %T, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", he.Code, http.StatusInternalServerError)
	}
	msg := fmt.Sprint(he.Message)
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "SQLSTATE") {
		t.Errorf("driver detail leaked to client: %q", msg)
	}
	var pgErr *pgconn.PgError
	if !errors.As(he.Internal, &pgErr) {
		t.Errorf("internal error = %v, want the pg error preserved for logging", he.Internal)
	}
}

func TestCreateHandler_ValidationIs400(t *testing.T) {
	repo := newMockRepo()
	queueID := uuid.New()
	h := NewHandler(NewService(repo, newMockQueue(queueID), &fakeTxManager{}))

	body := fmt.Sprintf(`{"patient_id":%q,"triage_level":9,"triage_category":"emergent","chief_complaint":"chest pain","assessed_by":%q}`,
		uuid.New(), uuid.New())
	c, _ := postJSON(t, body)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error = %T, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", he.Code, http.StatusBadRequest)
	}
}

func TestCreateHandler_MissingQueueEntryIs404(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo, newMockQueue(), &fakeTxManager{}))

	c, _ := postJSON(t, assessmentBody(uuid.New()))
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error = %T, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", he.Code, http.StatusNotFound)
	}
}
