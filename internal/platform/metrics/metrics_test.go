package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMiddleware_RecordsRequest(t *testing.T) {
	reg := NewRegistry()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/children", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/children")

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := reg.Middleware()
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Scrape and verify the counter appears
	scrapeReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	scrapeRec := httptest.NewRecorder()
	scrapeCtx := e.NewContext(scrapeReq, scrapeRec)

	if err := reg.Handler()(scrapeCtx); err != nil {
		t.Fatalf("unexpected scrape error: %v", err)
	}
	body := scrapeRec.Body.String()
	if !strings.Contains(body, "mamacare_http_requests_total") {
		t.Error("expected mamacare_http_requests_total in scrape output")
	}
	if !strings.Contains(body, `path="/api/v1/children"`) {
		t.Error("expected path label in scrape output")
	}
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	reg := NewRegistry()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/children/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/children/:id")

	handler := func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	mw := reg.Middleware()
	h := mw(handler)
	if err := h(c); err == nil {
		t.Fatal("expected error to propagate")
	}

	scrapeReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	scrapeRec := httptest.NewRecorder()
	scrapeCtx := e.NewContext(scrapeReq, scrapeRec)

	if err := reg.Handler()(scrapeCtx); err != nil {
		t.Fatalf("unexpected scrape error: %v", err)
	}
	if !strings.Contains(scrapeRec.Body.String(), `status="404"`) {
		t.Error("expected status 404 label in scrape output")
	}
}

func TestReminderCounters(t *testing.T) {
	reg := NewRegistry()
	reg.ReminderSent()
	reg.ReminderSent()
	reg.ReminderFailed()

	e := echo.New()
	scrapeReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	scrapeRec := httptest.NewRecorder()
	scrapeCtx := e.NewContext(scrapeReq, scrapeRec)

	if err := reg.Handler()(scrapeCtx); err != nil {
		t.Fatalf("unexpected scrape error: %v", err)
	}
	body := scrapeRec.Body.String()
	if !strings.Contains(body, "mamacare_reminders_sent_total 2") {
		t.Error("expected reminders_sent_total 2 in scrape output")
	}
	if !strings.Contains(body, "mamacare_reminders_failed_total 1") {
		t.Error("expected reminders_failed_total 1 in scrape output")
	}
}
