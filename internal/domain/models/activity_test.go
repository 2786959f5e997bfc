package models_test

import (
	"encoding/json"
	"testing"

	"github.com/dalemusser/activityhub/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestActivity_SpotsLeft(t *testing.T) {
	tests := []struct {
		name string
		max  int
		n    int
		want int
	}{
		{"room left", 10, 3, 7},
		{"exactly full", 3, 3, 0},
		{"over capacity is not clamped", 2, 3, -1},
		{"empty", 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := models.Activity{MaxParticipants: tt.max, Participants: make([]string, tt.n)}
			if got := a.SpotsLeft(); got != tt.want {
				t.Errorf("SpotsLeft() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollection_UnmarshalKeepsKeyOrder(t *testing.T) {
	body := `{
		"Zebra Club": {"description": "z", "schedule": "Mon", "max_participants": 3, "participants": []},
		"Art": {"description": "a", "schedule": "Tue", "max_participants": 2, "participants": ["x@y.com"]},
		"Music": {"description": "m", "schedule": "Wed", "max_participants": 9, "participants": []}
	}`

	var c models.Collection
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"Zebra Club", "Art", "Music"}
	if diff := cmp.Diff(want, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	art, ok := c.Get("Art")
	if !ok {
		t.Fatal("expected Art in collection")
	}
	if art.Name != "Art" || art.MaxParticipants != 2 || len(art.Participants) != 1 {
		t.Errorf("unexpected Art: %+v", art)
	}
}

func TestCollection_NamesAreCaseSensitive(t *testing.T) {
	c := models.NewCollection(models.Activity{Name: "Chess Club"})
	if _, ok := c.Get("chess club"); ok {
		t.Error("lookup should be case-sensitive")
	}
}

func TestCollection_MarshalRoundTripPreservesOrder(t *testing.T) {
	in := models.NewCollection(
		models.Activity{Name: "b", Description: "B", MaxParticipants: 1},
		models.Activity{Name: "a", Description: "A", MaxParticipants: 2, Participants: []string{"p@q.com"}},
	)

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"b":{"description":"B","schedule":"","max_participants":1,"participants":[]},` +
		`"a":{"description":"A","schedule":"","max_participants":2,"participants":["p@q.com"]}}`
	if string(raw) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", raw, want)
	}

	var out models.Collection
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in.All(), out.All(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_UnmarshalRejectsNonObject(t *testing.T) {
	var c models.Collection
	if err := json.Unmarshal([]byte(`["not", "an", "object"]`), &c); err == nil {
		t.Error("expected error for JSON array")
	}
	if err := json.Unmarshal([]byte(`<html>`), &c); err == nil {
		t.Error("expected error for non-JSON body")
	}
}
