package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRequestTimeout_FastHandlerUnaffected(t *testing.T) {
	handler := func(c echo.Context) error {
		if _, ok := c.Request().Context().Deadline(); !ok {
			t.Error("expected the request context to carry a deadline")
		}
		return c.String(http.StatusOK, "ok")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/children", nil)
	rec, err := serve(RequestTimeout(5*time.Second), handler, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequestTimeout_SlowHandlerGets504(t *testing.T) {
	slow := func(c echo.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return c.String(http.StatusOK, "too late")
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pregnancies", nil)
	rec, err := serve(RequestTimeout(20*time.Millisecond), slow, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the 504 body")
	}
}

func TestRequestTimeout_ExemptPaths(t *testing.T) {
	cases := []struct {
		path   string
		exempt bool
	}{
		{"/metrics", true},
		{"/health", true},
		{"/health/db", true},
		{"/api/v1/children", false},
		{"/api/v1/tips", false},
	}

	for _, tc := range cases {
		handler := func(c echo.Context) error {
			_, hasDeadline := c.Request().Context().Deadline()
			if tc.exempt && hasDeadline {
				t.Errorf("%s: expected no deadline", tc.path)
			}
			if !tc.exempt && !hasDeadline {
				t.Errorf("%s: expected a deadline", tc.path)
			}
			return c.String(http.StatusOK, "ok")
		}

		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if _, err := serve(RequestTimeout(30*time.Second), handler, req); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.path, err)
		}
	}
}

func TestRequestTimeout_HandlerErrorsPassThrough(t *testing.T) {
	notFound := func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "child not found")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/children/123", nil)
	_, err := serve(RequestTimeout(5*time.Second), notFound, req)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}
