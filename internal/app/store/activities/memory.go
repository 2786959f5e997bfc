// internal/app/store/activities/memory.go
package activitystore

import (
	"context"
	"sync"

	"github.com/dalemusser/activityhub/internal/domain/models"
)

// Memory is a process-local Store. State is lost on restart.
type Memory struct {
	mu         sync.Mutex
	activities []models.Activity
}

// NewMemory returns a Memory store holding copies of acts, in order.
func NewMemory(acts []models.Activity) *Memory {
	m := &Memory{activities: make([]models.Activity, 0, len(acts))}
	for _, a := range acts {
		m.activities = append(m.activities, a.Clone())
	}
	return m
}

func (m *Memory) List(_ context.Context) (models.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var c models.Collection
	for _, a := range m.activities {
		c.Put(a.Clone())
	}
	return c, nil
}

func (m *Memory) Signup(_ context.Context, activity, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.find(activity)
	if a == nil {
		return "", ErrActivityNotFound
	}
	email = NormalizeEmail(email)
	if indexOf(a.Participants, email) >= 0 {
		return "", ErrAlreadySignedUp
	}
	if len(a.Participants) >= a.MaxParticipants {
		return "", ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return signedUpMessage(activity, email), nil
}

func (m *Memory) Remove(_ context.Context, activity, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.find(activity)
	if a == nil {
		return "", ErrActivityNotFound
	}
	email = NormalizeEmail(email)
	i := indexOf(a.Participants, email)
	if i < 0 {
		return "", ErrParticipantNotFound
	}
	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return removedMessage(activity, email), nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// find must be called with mu held.
func (m *Memory) find(name string) *models.Activity {
	for i := range m.activities {
		if m.activities[i].Name == name {
			return &m.activities[i]
		}
	}
	return nil
}
