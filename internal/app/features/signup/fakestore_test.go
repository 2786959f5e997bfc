package signup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/WatchBeam/clock"
	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/dalemusser/activityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// fakeStore is a scripted ActivityStore. With reject set, mutations answer
// with that status and body and change nothing.
type fakeStore struct {
	srv *httptest.Server

	mu         sync.Mutex
	col        models.Collection
	lists      int
	rawList    string
	rejectCode int
	rejectBody string
	// ack replaces the signup acknowledgement body when set.
	ack string
}

func newFakeStore(t *testing.T, acts ...models.Activity) *fakeStore {
	t.Helper()
	f := &fakeStore{col: models.NewCollection(acts...)}

	r := chi.NewRouter()
	r.Get("/activities", f.list)
	r.Post("/activities/{name}/signup", f.signup)
	r.Delete("/activities/{name}/participants", f.remove)

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStore) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeStore) reject(code int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectCode, f.rejectBody = code, body
}

func (f *fakeStore) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.rawList != "" {
		_, _ = w.Write([]byte(f.rawList))
		return
	}
	_ = json.NewEncoder(w).Encode(f.col)
}

func (f *fakeStore) rejected(w http.ResponseWriter) bool {
	if f.rejectCode == 0 {
		return false
	}
	w.WriteHeader(f.rejectCode)
	_, _ = w.Write([]byte(f.rejectBody))
	return true
}

func (f *fakeStore) signup(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejected(w) {
		return
	}
	a, ok := f.col.Get(chi.URLParam(r, "name"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Activity not found"}`))
		return
	}
	a.Participants = append(a.Participants, r.URL.Query().Get("email"))
	f.col.Put(a)
	if f.ack != "" {
		_, _ = w.Write([]byte(f.ack))
		return
	}
	_, _ = w.Write([]byte(`{"message":"Signed up"}`))
}

func (f *fakeStore) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejected(w) {
		return
	}
	a, _ := f.col.Get(chi.URLParam(r, "name"))
	email := r.URL.Query().Get("email")
	kept := a.Participants[:0:0]
	for _, p := range a.Participants {
		if p != email {
			kept = append(kept, p)
		}
	}
	a.Participants = kept
	f.col.Put(a)
	_, _ = w.Write([]byte(`{"message":"Removed"}`))
}

type widget struct {
	store      *fakeStore
	renderer   *Renderer
	board      *Board
	controller *Controller
	clock      *clock.Mock
}

func newWidget(t *testing.T, f *fakeStore) *widget {
	t.Helper()
	client, err := storeclient.New(f.srv.URL, f.srv.Client(), zap.NewNop())
	if err != nil {
		t.Fatalf("storeclient.New: %v", err)
	}
	mc := clock.NewMockClock()
	renderer := NewRenderer(client, zap.NewNop())
	board := NewBoard(mc)
	return &widget{
		store:      f,
		renderer:   renderer,
		board:      board,
		controller: NewController(client, renderer, board, zap.NewNop()),
		clock:      mc,
	}
}

func chessClub(participants ...string) models.Activity {
	return models.Activity{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    participants,
	}
}

func programming(participants ...string) models.Activity {
	return models.Activity{
		Name:            "Programming Class",
		Description:     "Learn programming fundamentals",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 20,
		Participants:    participants,
	}
}

func cardNamed(v View, name string) (Card, bool) {
	for _, c := range v.Cards {
		if c.Name == name {
			return c, true
		}
	}
	return Card{}, false
}

func emails(c Card) []string {
	var out []string
	for _, p := range c.Participants {
		out = append(out, p.Email)
	}
	return out
}
