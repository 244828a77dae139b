package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

func asHTTPError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	return he
}

func TestMap_NotFound(t *testing.T) {
	he := asHTTPError(t, Map(db.ErrNotFound, "widget not found"))
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
	if he.Message != "widget not found" {
		t.Errorf("expected caller's message, got %v", he.Message)
	}
}

func TestMap_WrappedNotFound(t *testing.T) {
	wrapped := fmt.Errorf("load row: %w", db.ErrNotFound)
	he := asHTTPError(t, Map(wrapped, "widget not found"))
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for wrapped not-found, got %d", he.Code)
	}
}

func TestMap_Conflict(t *testing.T) {
	he := asHTTPError(t, Map(db.ErrConflict, "x"))
	if he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", he.Code)
	}
}

func TestMap_Validation(t *testing.T) {
	he := asHTTPError(t, Map(validate.New("quantity must be positive"), "x"))
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
	if he.Message != "quantity must be positive" {
		t.Errorf("expected validation message, got %v", he.Message)
	}
}

func TestMap_DriverErrorHidden(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23503",
		Message: `insert or update on table "triage_assessment" violates foreign key constraint "triage_assessment_patient_id_fkey"`,
	}
	he := asHTTPError(t, Map(pgErr, "x"))

	if he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for driver error, got %d", he.Code)
	}
	msg := fmt.Sprint(he.Message)
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "SQLSTATE") {
		t.Errorf("driver detail leaked into response message: %q", msg)
	}
	if he.Internal == nil || !errors.As(he.Internal, new(*pgconn.PgError)) {
		t.Error("expected original error retained in Internal for logging")
	}
}

func TestMap_UnknownErrorHidden(t *testing.T) {
	he := asHTTPError(t, Map(errors.New("dial tcp 10.0.0.5:5432: connection refused"), "x"))
	if he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", he.Code)
	}
	if msg := fmt.Sprint(he.Message); strings.Contains(msg, "dial tcp") {
		t.Errorf("internal detail leaked into response message: %q", msg)
	}
}

func TestValidate_Identity(t *testing.T) {
	sentinel := validate.New("bad value")
	wrapped := fmt.Errorf("check input: %w", sentinel)

	if !errors.Is(wrapped, sentinel) {
		t.Error("expected sentinel identity to survive wrapping")
	}
	if !validate.Invalid(wrapped) {
		t.Error("expected wrapped validation error to be recognized")
	}
	if validate.Invalid(errors.New("plain")) {
		t.Error("plain error must not count as validation")
	}
}
