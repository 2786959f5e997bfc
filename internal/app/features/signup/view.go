// internal/app/features/signup/view.go
package signup

import (
	"html/template"
	"net/url"

	"github.com/dalemusser/activityhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/activityhub/internal/domain/models"
)

// Fixed view texts.
const (
	PlaceholderOption  = "-- Select an activity --"
	NoParticipantsText = "No participants yet"
	LoadFailedNotice   = "Failed to load activities. Please try again later."
	removalKeyActivity = "activity"
	removalKeyEmail    = "email"
)

// Option is one entry of the activity select control. The placeholder has
// an empty Value.
type Option struct {
	Value string
	Label string
}

// ParticipantRow is one removable roster entry. RemoveKey carries the
// (activity, email) pair the delegated removal handler acts on.
type ParticipantRow struct {
	Activity  string
	Email     string
	RemoveKey string
}

// Card is the rendered form of one activity.
type Card struct {
	Name         string
	Category     string
	Description  template.HTML
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
}

// HasParticipants reports whether the roster should be listed; otherwise
// the placeholder is shown.
func (c Card) HasParticipants() bool { return len(c.Participants) > 0 }

// View is the complete widget state built from one snapshot.
type View struct {
	Cards   []Card
	Options []Option
	// Notice replaces the card list when the last load failed.
	Notice string
}

// LoadFailed reports whether the list area shows the failure notice.
func (v View) LoadFailed() bool { return v.Notice != "" }

// emptyView is the state before the first successful load.
func emptyView() View {
	return View{Options: []Option{{Label: PlaceholderOption}}}
}

// BuildView renders a collection into a fresh View. Cards and options follow
// collection order; nothing is carried over from earlier views.
func BuildView(c models.Collection) View {
	acts := c.All()
	v := View{
		Cards:   make([]Card, 0, len(acts)),
		Options: make([]Option, 0, len(acts)+1),
	}
	v.Options = append(v.Options, Option{Label: PlaceholderOption})

	for _, a := range acts {
		card := Card{
			Name:        a.Name,
			Category:    a.Category,
			Description: htmlsanitize.SanitizeToHTML(a.Description),
			Schedule:    a.Schedule,
			SpotsLeft:   a.SpotsLeft(),
		}
		for _, email := range a.Participants {
			card.Participants = append(card.Participants, ParticipantRow{
				Activity:  a.Name,
				Email:     email,
				RemoveKey: removalKey(a.Name, email),
			})
		}
		v.Cards = append(v.Cards, card)
		v.Options = append(v.Options, Option{Value: a.Name, Label: a.Name})
	}
	return v
}

func removalKey(activity, email string) string {
	return url.Values{
		removalKeyActivity: {activity},
		removalKeyEmail:    {email},
	}.Encode()
}

// parseRemovalKey decodes a key produced by removalKey.
func parseRemovalKey(key string) (activity, email string, ok bool) {
	q, err := url.ParseQuery(key)
	if err != nil {
		return "", "", false
	}
	activity, email = q.Get(removalKeyActivity), q.Get(removalKeyEmail)
	if activity == "" || email == "" {
		return "", "", false
	}
	return activity, email, true
}
