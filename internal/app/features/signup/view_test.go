package signup

import (
	"testing"

	"github.com/dalemusser/activityhub/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

func TestBuildView_SpotsLeft(t *testing.T) {
	three := []string{"a@x.com", "b@x.com", "c@x.com"}
	v := BuildView(models.NewCollection(
		models.Activity{Name: "Roomy", MaxParticipants: 10, Participants: three},
		models.Activity{Name: "Over", MaxParticipants: 2, Participants: three},
	))

	want := map[string]int{"Roomy": 7, "Over": -1}
	for name, spots := range want {
		c, ok := cardNamed(v, name)
		if !ok {
			t.Fatalf("missing card %q", name)
		}
		if c.SpotsLeft != spots {
			t.Errorf("%s: spots left = %d, want %d", name, c.SpotsLeft, spots)
		}
	}
}

func TestBuildView_EmptyRosterUsesPlaceholder(t *testing.T) {
	v := BuildView(models.NewCollection(programming()))

	c := v.Cards[0]
	if c.HasParticipants() {
		t.Error("expected no participant rows")
	}
	if c.Participants != nil {
		t.Errorf("expected nil rows, got %v", c.Participants)
	}
}

func TestBuildView_CardsAndOptionsFollowCollectionOrder(t *testing.T) {
	v := BuildView(models.NewCollection(programming(), chessClub("a@b.com")))

	wantOpts := []Option{
		{Label: PlaceholderOption},
		{Value: "Programming Class", Label: "Programming Class"},
		{Value: "Chess Club", Label: "Chess Club"},
	}
	if diff := cmp.Diff(wantOpts, v.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if v.Cards[0].Name != "Programming Class" || v.Cards[1].Name != "Chess Club" {
		t.Errorf("card order = %s, %s", v.Cards[0].Name, v.Cards[1].Name)
	}
	if v.LoadFailed() {
		t.Error("fresh view should not report a load failure")
	}
}

func TestBuildView_SanitizesDescription(t *testing.T) {
	a := chessClub()
	a.Description = `<p>Hi</p><script>alert(1)</script>`
	v := BuildView(models.NewCollection(a))

	if got := string(v.Cards[0].Description); got != "<p>Hi</p>" {
		t.Errorf("description = %q", got)
	}
}

func TestRemovalKey_RoundTrip(t *testing.T) {
	cases := [][2]string{
		{"Chess Club", "a@b.com"},
		{"Arts & Crafts/100%", "a+b@c.com"},
		{"x=y&email=evil", "q@r.s"},
	}
	for _, tc := range cases {
		activity, email, ok := parseRemovalKey(removalKey(tc[0], tc[1]))
		if !ok || activity != tc[0] || email != tc[1] {
			t.Errorf("round trip of %q/%q = %q/%q ok=%v", tc[0], tc[1], activity, email, ok)
		}
	}
}

func TestParseRemovalKey_Rejects(t *testing.T) {
	for _, key := range []string{"", "activity=Chess", "email=a@b.com", "%zz"} {
		if _, _, ok := parseRemovalKey(key); ok {
			t.Errorf("parseRemovalKey(%q) accepted", key)
		}
	}
}
