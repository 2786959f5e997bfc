package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/activityhub/internal/app/features/health"
	activitystore "github.com/dalemusser/activityhub/internal/app/store/activities"
	"go.uber.org/zap"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

type healthBody struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Message string `json:"message"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, healthBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, body
}

func TestServe_StoreReachable(t *testing.T) {
	store := activitystore.NewMemory(activitystore.DefaultActivities())
	rec, body := serve(t, health.NewHandler(store, "memory", zap.NewNop()))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	if body.Status != "ok" || body.Backend != "memory" {
		t.Errorf("body = %+v", body)
	}
}

func TestServe_StoreDown(t *testing.T) {
	rec, body := serve(t, health.NewHandler(downStore{}, "postgres", zap.NewNop()))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if body.Status != "error" || body.Message != "Store unavailable" {
		t.Errorf("body = %+v", body)
	}
}

func TestServe_NoLocalStore(t *testing.T) {
	rec, body := serve(t, health.NewHandler(nil, "none", zap.NewNop()))
	if rec.Code != http.StatusOK || body.Backend != "none" {
		t.Errorf("got %d %+v", rec.Code, body)
	}
}
