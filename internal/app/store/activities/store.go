// internal/app/store/activities/store.go
package activitystore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/activityhub/internal/domain/models"
)

// Sentinel errors returned by every backend.
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrAlreadySignedUp     = errors.New("student is already signed up")
	ErrActivityFull        = errors.New("activity is full")
	ErrParticipantNotFound = errors.New("participant not found")
)

// Store is the authoritative owner of activities and their rosters.
type Store interface {
	List(ctx context.Context) (models.Collection, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Remove(ctx context.Context, activity, email string) (string, error)
	Ping(ctx context.Context) error
}

// NormalizeEmail is the comparison and storage form of a participant email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func signedUpMessage(activity, email string) string {
	return fmt.Sprintf("Signed up %s for %s", email, activity)
}

func removedMessage(activity, email string) string {
	return fmt.Sprintf("Removed %s from %s", email, activity)
}

// indexOf finds email in roster using normalised comparison.
func indexOf(roster []string, email string) int {
	for i, p := range roster {
		if NormalizeEmail(p) == email {
			return i
		}
	}
	return -1
}
