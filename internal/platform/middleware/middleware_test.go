package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

func TestRequestID_GeneratesNew(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		if requestID(c) == "" {
			t.Error("expected request_id to be generated")
		}
		return c.String(http.StatusOK, "ok")
	}

	if err := RequestID()(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("expected a uuid X-Request-ID, got %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		if rid := requestID(c); rid != "my-custom-id" {
			t.Errorf("expected my-custom-id, got %s", rid)
		}
		return c.String(http.StatusOK, "ok")
	}
	RequestID()(handler)(c)

	if rec.Header().Get(RequestIDHeader) != "my-custom-id" {
		t.Errorf("expected my-custom-id in response header, got %s", rec.Header().Get(RequestIDHeader))
	}
}

func TestLogger_LogsStatusFromErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/patients/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(requestIDKey, "req-1")

	handler := func(c echo.Context) error {
		return errs.NotFound("patient x not found")
	}
	if err := Logger(logger)(handler)(c); err != nil {
		t.Fatalf("logger should hand the error to echo, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if line["level"] != "warn" || line["status"] != float64(404) || line["request_id"] != "req-1" {
		t.Errorf("unexpected log line %v", line)
	}
}

func TestRecovery_PanicBecomesErrorBody(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(RequestID(), Recovery(logger))
	e.GET("/panic", func(c echo.Context) error {
		panic("patient p1 ssn 123-45-6789")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if body.Error != "internal server error" {
		t.Errorf("error = %q", body.Error)
	}
	if strings.Contains(rec.Body.String(), "ssn") {
		t.Errorf("panic value leaked to the client: %s", rec.Body.String())
	}
	out := logs.String()
	if !strings.Contains(out, "handler panicked") || !strings.Contains(out, "123-45-6789") || !strings.Contains(out, "req-42") {
		t.Errorf("panic not logged with its request id: %s", out)
	}
}

func TestRecovery_ReraisesAbort(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", r)
		}
	}()
	Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic(http.ErrAbortHandler)
	})(c)
}

func TestRecovery_PassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	if err := Recovery(zerolog.Nop())(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", errs.Validation("name is required"), http.StatusBadRequest, "name is required"},
		{"not found", errs.NotFound("appointment a1 not found"), http.StatusNotFound, "appointment a1 not found"},
		{"conflict", errs.Conflict("patient p1 already exists"), http.StatusInternalServerError, "patient p1 already exists"},
		{"upstream", errs.Upstream(errors.New("dial tcp"), "search Patient"), http.StatusInternalServerError, "search Patient"},
		{"plain", errors.New("disk full"), http.StatusInternalServerError, "disk full"},
		{"echo", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "rate limit exceeded"},
		{"echo no message", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ErrorHandler(zerolog.Nop())(tt.err, e.NewContext(req, rec))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %q", rec.Body.String())
			}
			if !strings.Contains(body.Error, tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", body.Error, tt.wantMsg)
			}
		})
	}
}

func TestErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.String(http.StatusOK, "partial")

	ErrorHandler(zerolog.Nop())(errors.New("late"), c)
	if rec.Body.String() != "partial" {
		t.Errorf("committed body rewritten: %q", rec.Body.String())
	}
}
