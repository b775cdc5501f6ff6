package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger_WritesEntryPerRequest(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusTeapot, "short and stout") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log entry, got %q", buf.String())
	}
	if entry["level"] != "warn" || entry["uri"] != "/ping?x=1" || entry["status"] != float64(http.StatusTeapot) {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}
