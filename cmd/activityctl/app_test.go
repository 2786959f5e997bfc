package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/activityhub/internal/app/features/activitiesapi"
	activitystore "github.com/dalemusser/activityhub/internal/app/store/activities"
	"github.com/dalemusser/activityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func newStoreServer(t *testing.T) (*httptest.Server, *activitystore.Memory) {
	t.Helper()
	store := activitystore.NewMemory([]models.Activity{
		{Name: "Chess Club", Description: "Puzzles", Schedule: "Fridays", MaxParticipants: 12,
			Participants: []string{"michael@mergington.edu"}},
		{Name: "Art Club", Description: "Paint", Schedule: "Thursdays", MaxParticipants: 15},
	})
	r := chi.NewRouter()
	r.Mount("/activities", activitiesapi.Routes(activitiesapi.NewHandler(store, zap.NewNop())))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := createApp(&stdout, &stderr)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"activityctl"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestList(t *testing.T) {
	srv, _ := newStoreServer(t)

	out, _, err := run(t, "--url", srv.URL, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"Chess Club", "michael@mergington.edu", "11", "Art Club", "No participants yet", "2 activities"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSignupAndRemove(t *testing.T) {
	srv, store := newStoreServer(t)

	out, _, err := run(t, "--url", srv.URL, "signup", "Art Club", "new@mergington.edu")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if !strings.Contains(out, "Signed up new@mergington.edu for Art Club") {
		t.Errorf("unexpected output: %q", out)
	}
	// The refreshed roster follows the acknowledgement.
	for _, want := range []string{"spots left", "michael@mergington.edu", "14", "2 activities"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, errOut, err := run(t, "--url", srv.URL, "signup", "Art Club", "new@mergington.edu")
	if err == nil {
		t.Error("duplicate signup should fail")
	}
	if !strings.Contains(errOut, "Student is already signed up") {
		t.Errorf("stderr = %q", errOut)
	}

	out, _, err = run(t, "--url", srv.URL, "rm", "Art Club", "new@mergington.edu")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !strings.Contains(out, "No participants yet") || !strings.Contains(out, "15") {
		t.Errorf("refreshed list missing after remove:\n%s", out)
	}
	col, _ := store.List(context.Background())
	art, _ := col.Get("Art Club")
	if len(art.Participants) != 0 {
		t.Errorf("roster = %v", art.Participants)
	}
}

func TestList_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, errOut, err := run(t, "--url", url, "list")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(errOut, "Failed to load activities") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestSignup_Usage(t *testing.T) {
	if _, _, err := run(t, "signup", "Chess Club"); err == nil {
		t.Error("expected usage error")
	}
}
