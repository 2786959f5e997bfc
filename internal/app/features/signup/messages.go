// internal/app/features/signup/messages.go
package signup

import (
	"sync"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/google/uuid"
)

// Status is the CSS class of the message area.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Message is the content of a visitor's message area. It is visible while
// now is before HideAt.
type Message struct {
	ID     string
	Text   string
	Status Status
	HideAt time.Time
}

// VisibleAt reports whether the message is still shown at now. An empty
// text still occupies the message area until its deadline.
func (m Message) VisibleAt(now time.Time) bool {
	return now.Before(m.HideAt)
}

// RemainingAt returns how long the message stays visible after now.
func (m Message) RemainingAt(now time.Time) time.Duration {
	if !m.VisibleAt(now) {
		return 0
	}
	return m.HideAt.Sub(now)
}

// Draft is the signup form as the visitor last submitted it.
type Draft struct {
	Activity string
	Email    string
}

type area struct {
	msg     Message
	draft   Draft
	touched time.Time
}

// Board holds one message area per visitor. Showing a message replaces the
// previous one along with its deadline, so an older deadline never hides a
// newer message.
type Board struct {
	clock clock.Clock

	mu    sync.Mutex
	areas map[string]*area
}

// NewBoard returns an empty board. A nil clock means the wall clock.
func NewBoard(c clock.Clock) *Board {
	if c == nil {
		c = clock.C
	}
	return &Board{clock: c, areas: make(map[string]*area)}
}

// Now returns the board's current time.
func (b *Board) Now() time.Time { return b.clock.Now() }

func (b *Board) areaFor(visitor string, now time.Time) *area {
	a, ok := b.areas[visitor]
	if !ok {
		a = &area{}
		b.areas[visitor] = a
	}
	a.touched = now
	return a
}

// Show replaces the visitor's message and schedules it to hide after ttl.
func (b *Board) Show(visitor, text string, status Status, ttl time.Duration) Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	msg := Message{
		ID:     uuid.NewString(),
		Text:   text,
		Status: status,
		HideAt: now.Add(ttl),
	}
	b.areaFor(visitor, now).msg = msg
	return msg
}

// Current returns the visitor's message if it is still visible.
func (b *Board) Current(visitor string) (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.areas[visitor]
	if !ok || !a.msg.VisibleAt(b.clock.Now()) {
		return Message{}, false
	}
	return a.msg, true
}

// SetDraft stores the form values to show on the next render.
func (b *Board) SetDraft(visitor string, d Draft) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.areaFor(visitor, b.clock.Now()).draft = d
}

// ClearDraft resets the visitor's form.
func (b *Board) ClearDraft(visitor string) {
	b.SetDraft(visitor, Draft{})
}

// Draft returns the visitor's saved form values.
func (b *Board) Draft(visitor string) Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a, ok := b.areas[visitor]; ok {
		return a.draft
	}
	return Draft{}
}

// Prune drops areas untouched for longer than idle whose message has
// already hidden. It returns the number removed.
func (b *Board) Prune(idle time.Duration) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	removed := 0
	for visitor, a := range b.areas {
		if now.Sub(a.touched) > idle && !a.msg.VisibleAt(now) {
			delete(b.areas, visitor)
			removed++
		}
	}
	return removed
}

// Len returns the number of live message areas.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.areas)
}
