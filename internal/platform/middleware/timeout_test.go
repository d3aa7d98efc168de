package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRequestTimeout_CompletesWithinDeadline(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := func(c echo.Context) error {
		called = true
		if _, ok := c.Request().Context().Deadline(); !ok {
			t.Error("expected context to have a deadline")
		}
		return c.String(http.StatusOK, "ok")
	}

	if err := RequestTimeout(5 * time.Second)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestRequestTimeout_ReturnsTimeoutOnExpiry(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		<-c.Request().Context().Done()
		return c.Request().Context().Err()
	}

	err := RequestTimeout(20 * time.Millisecond)(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %d", httpErr.Code)
	}
}

func TestRequestTimeout_Disabled(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error {
		if _, ok := c.Request().Context().Deadline(); ok {
			t.Error("expected no deadline")
		}
		return nil
	}
	if err := RequestTimeout(0)(handler)(c); err != nil {
		t.Fatal(err)
	}
}

func TestRequestTimeout_PropagatesHandlerError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/123", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	err := RequestTimeout(5 * time.Second)(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestRequestTimeout_ResponsesStayWithTheirRequest(t *testing.T) {
	e := echo.New()
	e.Use(RequestTimeout(20 * time.Millisecond))
	e.GET("/slow", func(c echo.Context) error {
		<-c.Request().Context().Done()
		time.Sleep(40 * time.Millisecond)
		return c.Request().Context().Err()
	})
	e.GET("/late", func(c echo.Context) error {
		time.Sleep(60 * time.Millisecond)
		return c.String(http.StatusOK, "late")
	})
	e.GET("/fast", func(c echo.Context) error {
		return c.String(http.StatusOK, "fast")
	})

	slow := httptest.NewRecorder()
	e.ServeHTTP(slow, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if slow.Code != http.StatusGatewayTimeout {
		t.Fatalf("slow: expected 504, got %d", slow.Code)
	}

	late := httptest.NewRecorder()
	e.ServeHTTP(late, httptest.NewRequest(http.MethodGet, "/late", nil))
	if late.Code != http.StatusOK || late.Body.String() != "late" {
		t.Fatalf("late: got %d %q", late.Code, late.Body.String())
	}

	for i := 0; i < 2; i++ {
		fast := httptest.NewRecorder()
		e.ServeHTTP(fast, httptest.NewRequest(http.MethodGet, "/fast", nil))
		if fast.Code != http.StatusOK || fast.Body.String() != "fast" {
			t.Fatalf("fast #%d: got %d %q", i, fast.Code, fast.Body.String())
		}
	}
	if strings.Contains(slow.Body.String(), "late") {
		t.Errorf("slow response picked up another handler's body: %q", slow.Body.String())
	}
}
