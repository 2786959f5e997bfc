// internal/app/features/activitiesapi/handler.go
package activitiesapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	activitystore "github.com/dalemusser/activityhub/internal/app/store/activities"
	"github.com/dalemusser/activityhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the ActivityStore JSON API.
type Handler struct {
	Store activitystore.Store
	Log   *zap.Logger
}

func NewHandler(store activitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// List handles GET /activities.
//
//	{ "Chess Club": { "description": "…", "schedule": "…",
//	                  "max_participants": 12, "participants": ["…"] }, … }
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.DB(), h.Log, "list activities")
	defer cancel()

	col, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("list activities failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Failed to load activities"})
		return
	}
	writeJSON(w, http.StatusOK, col)
}

// Signup handles POST /activities/{name}/signup?email=….
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	name, email, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.DB(), h.Log, "signup")
	defer cancel()

	msg, err := h.Store.Signup(ctx, name, email)
	if err != nil {
		h.writeStoreError(w, err, "signup", name)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// Remove handles DELETE /activities/{name}/participants?email=….
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	name, email, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.DB(), h.Log, "remove participant")
	defer cancel()

	msg, err := h.Store.Remove(ctx, name, email)
	if err != nil {
		h.writeStoreError(w, err, "remove participant", name)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// target extracts the activity name and email, answering 422 when the email
// is missing.
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "Invalid activity name"})
		return "", "", false
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: "email is required"})
		return "", "", false
	}
	return name, email, true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, op, activity string) {
	switch {
	case errors.Is(err, activitystore.ErrActivityNotFound):
		writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Activity not found"})
	case errors.Is(err, activitystore.ErrParticipantNotFound):
		writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Participant not found"})
	case errors.Is(err, activitystore.ErrAlreadySignedUp):
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "Student is already signed up"})
	case errors.Is(err, activitystore.ErrActivityFull):
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "Activity is full"})
	default:
		h.Log.Error("activity store failed",
			zap.String("operation", op), zap.String("activity", activity), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Internal server error"})
	}
}

// pathParam returns a URL parameter decoded exactly once. chi routes on the
// raw path when the request has one, leaving its params still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
