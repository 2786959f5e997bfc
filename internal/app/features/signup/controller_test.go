package signup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestSignup_Success(t *testing.T) {
	f := newFakeStore(t, chessClub(), programming())
	w := newWidget(t, f)
	ctx := context.Background()
	w.renderer.Refresh(ctx)
	w.board.SetDraft("v1", Draft{Activity: "Chess Club", Email: "a@b.com"})

	res := w.controller.Signup(ctx, "v1", "Chess Club", "a@b.com")

	if res.Message.Text != "Signed up" || res.Message.Status != StatusSuccess {
		t.Errorf("message = %+v", res.Message)
	}
	if !res.Refreshed {
		t.Error("expected a refresh after acknowledgement")
	}
	if d := w.board.Draft("v1"); d != (Draft{}) {
		t.Errorf("form not cleared: %+v", d)
	}
	card, _ := cardNamed(w.renderer.Current(), "Chess Club")
	if diff := cmp.Diff([]string{"a@b.com"}, emails(card)); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
	if f.listCount() != 2 {
		t.Errorf("list fetches = %d, want 2", f.listCount())
	}
}

func TestSignup_RejectedKeepsState(t *testing.T) {
	f := newFakeStore(t, chessClub("a@b.com"))
	w := newWidget(t, f)
	ctx := context.Background()
	before := w.renderer.Refresh(ctx)

	f.reject(http.StatusBadRequest, `{"detail":"Already signed up"}`)
	res := w.controller.Signup(ctx, "v1", "Chess Club", "a@b.com")

	if res.Message.Text != "Already signed up" || res.Message.Status != StatusError {
		t.Errorf("message = %+v", res.Message)
	}
	if res.Refreshed || f.listCount() != 1 {
		t.Errorf("unexpected refresh: refreshed=%v lists=%d", res.Refreshed, f.listCount())
	}
	if diff := cmp.Diff(before, w.renderer.Current()); diff != "" {
		t.Errorf("view changed (-want +got):\n%s", diff)
	}
	want := Draft{Activity: "Chess Club", Email: "a@b.com"}
	if d := w.board.Draft("v1"); d != want {
		t.Errorf("draft = %+v, want %+v", d, want)
	}
}

func TestSignup_RejectedWithoutDetail(t *testing.T) {
	f := newFakeStore(t, chessClub())
	w := newWidget(t, f)

	f.reject(http.StatusInternalServerError, `{}`)
	res := w.controller.Signup(context.Background(), "v1", "Chess Club", "a@b.com")
	if res.Message.Text != "An error occurred" {
		t.Errorf("message = %q", res.Message.Text)
	}
}

func TestSignup_NoActivitySelected(t *testing.T) {
	f := newFakeStore(t, chessClub())
	w := newWidget(t, f)

	res := w.controller.Signup(context.Background(), "v1", "", "a@b.com")
	if res.Message.Text != "Please select an activity" || res.Message.Status != StatusError {
		t.Errorf("message = %+v", res.Message)
	}
	if f.listCount() != 0 {
		t.Error("no request should be sent without an activity")
	}
}

func TestSignup_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client, _ := storeclient.New(srv.URL, nil, zap.NewNop())
	board := NewBoard(nil)
	c := NewController(client, NewRenderer(client, zap.NewNop()), board, zap.NewNop())

	res := c.Signup(context.Background(), "v1", "Chess Club", "a@b.com")
	if res.Message.Text != "Failed to sign up. Please try again." {
		t.Errorf("message = %q", res.Message.Text)
	}

	res = c.RemoveParticipant(context.Background(), "v1", "Chess Club", "a@b.com")
	if res.Message.Text != "Failed to remove participant. Please try again." {
		t.Errorf("message = %q", res.Message.Text)
	}
}

func TestSignup_MessageTTLs(t *testing.T) {
	f := newFakeStore(t, chessClub("a@b.com"))
	w := newWidget(t, f)
	now := w.clock.Now()

	res := w.controller.Signup(context.Background(), "v1", "Chess Club", "new@b.com")
	if got := res.Message.HideAt.Sub(now); got != DefaultSignupTTL {
		t.Errorf("signup ttl = %v", got)
	}
	res = w.controller.RemoveParticipant(context.Background(), "v1", "Chess Club", "a@b.com")
	if got := res.Message.HideAt.Sub(now); got != DefaultRemovalTTL {
		t.Errorf("removal ttl = %v", got)
	}
}

func TestRemoveParticipant_Success(t *testing.T) {
	f := newFakeStore(t, chessClub("a@b.com", "c@d.com"))
	w := newWidget(t, f)
	ctx := context.Background()
	w.renderer.Refresh(ctx)

	res := w.controller.RemoveParticipant(ctx, "v1", "Chess Club", "a@b.com")

	if res.Message.Text != "Removed" || !res.Refreshed {
		t.Errorf("result = %+v", res)
	}
	card, _ := cardNamed(w.renderer.Current(), "Chess Club")
	if diff := cmp.Diff([]string{"c@d.com"}, emails(card)); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveParticipant_Rejected(t *testing.T) {
	f := newFakeStore(t, chessClub("a@b.com"))
	w := newWidget(t, f)

	f.reject(http.StatusNotFound, `{"detail":"Participant not found"}`)
	res := w.controller.RemoveParticipant(context.Background(), "v1", "Chess Club", "x@y.com")
	if res.Message.Text != "Participant not found" || res.Refreshed {
		t.Errorf("result = %+v", res)
	}

	f.reject(http.StatusBadGateway, `<html>bad gateway</html>`)
	res = w.controller.RemoveParticipant(context.Background(), "v1", "Chess Club", "x@y.com")
	if res.Message.Text != "Failed to remove participant" {
		t.Errorf("message = %q", res.Message.Text)
	}
}

func TestSignup_AckWithoutMessage(t *testing.T) {
	f := newFakeStore(t, chessClub())
	f.ack = `{}`
	w := newWidget(t, f)

	res := w.controller.Signup(context.Background(), "v1", "Chess Club", "a@b.com")

	if !res.Refreshed {
		t.Error("expected a refresh after acknowledgement")
	}
	msg, ok := w.board.Current("v1")
	if !ok || msg.Text != "" || msg.Status != StatusSuccess {
		t.Errorf("Current = %+v, %v; want an empty success message", msg, ok)
	}
}
