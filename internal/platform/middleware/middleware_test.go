package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func runHandler(mw echo.MiddlewareFunc, req *http.Request, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(h)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_Generated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := runHandler(RequestID(), req, okHandler)

	if rid := rec.Header().Get("X-Request-ID"); rid == "" {
		t.Error("expected generated request id header")
	}
}

func TestRequestID_Honored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec := runHandler(RequestID(), req, okHandler)

	if rid := rec.Header().Get("X-Request-ID"); rid != "client-supplied" {
		t.Errorf("expected client id to be kept, got %q", rid)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := runHandler(Recovery(logger), req, func(c echo.Context) error {
		panic("boom")
	})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	logger := zerolog.New(io.Discard)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler to propagate", r)
		}
	}()
	Recovery(logger)(func(c echo.Context) error {
		panic(http.ErrAbortHandler)
	})(c)
	t.Error("expected the panic to propagate")
}

func TestLogger_SkipsHealthChecks(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	runHandler(Logger(logger), req, okHandler)

	if buf.Len() != 0 {
		t.Errorf("expected no log line for /health, got %q", buf.String())
	}
}

func TestLogger_WarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/triage", nil)
	runHandler(Logger(logger), req, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad input")
	})

	line := buf.String()
	if !strings.Contains(line, `"level":"warn"`) {
		t.Errorf("expected warn level for 400, got %q", line)
	}
	if !strings.Contains(line, `"status":400`) {
		t.Errorf("expected status 400 in log line, got %q", line)
	}
}

func TestLogger_ErrorLevelOnServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/triage", nil)
	runHandler(Logger(logger), req, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	})

	line := buf.String()
	if !strings.Contains(line, `"level":"error"`) {
		t.Errorf("expected error level for 500, got %q", line)
	}
}

func TestRateLimit_AllowsWithinLimit(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 5})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := runHandler(mw, req, okHandler)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("expected rate limit header")
	}
}

func TestRateLimit_RejectsBurstOverflow(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = runHandler(mw, req, okHandler)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on third request, got %d", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestBodyLimit_RejectsDeclaredOversize(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 2048)))
	req.ContentLength = 2048
	rec := runHandler(BodyLimit("1K"), req, okHandler)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))
	rec := runHandler(BodyLimit("1K"), req, func(c echo.Context) error {
		body := make([]byte, 64)
		c.Request().Body.Read(body)
		return c.String(http.StatusOK, "ok")
	})

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1K", 1 << 10},
		{"2M", 2 << 20},
		{"1G", 1 << 30},
		{"512", 512},
		{"", 1 << 20},
		{"garbage", 1 << 20},
	}
	for _, tc := range cases {
		if got := parseLimit(tc.in); got != tc.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
