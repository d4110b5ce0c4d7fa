package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Readiness(t *testing.T) {
	e := newEcho()
	h := NewHealthHandler(map[string]Check{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "degraded" || resp.Dependencies["mongodb"].Status != "ok" || resp.Dependencies["redis"].Error != "connection refused" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestHealthHandler_ReadinessWithoutDependencies(t *testing.T) {
	e := newEcho()
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	_ = h.Readiness(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
