// internal/app/features/signup/controller.go
package signup

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/dalemusser/activityhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Message display durations. Removal messages are intentionally shorter.
const (
	DefaultSignupTTL  = 5 * time.Second
	DefaultRemovalTTL = 4 * time.Second
)

// User-facing fallback texts.
const (
	msgSelectActivity  = "Please select an activity"
	msgSignupRejected  = "An error occurred"
	msgSignupFailed    = "Failed to sign up. Please try again."
	msgRemovalRejected = "Failed to remove participant"
	msgRemovalFailed   = "Failed to remove participant. Please try again."
)

const (
	opSignup  = "signup"
	opRemoval = "remove participant"
)

// Mutator submits changes to the activity store.
type Mutator interface {
	Signup(ctx context.Context, activity, email string) (string, error)
	Remove(ctx context.Context, activity, email string) (string, error)
}

// Result reports what one operation did.
type Result struct {
	Message   Message
	Refreshed bool
}

// Controller runs signups and removals for a visitor. Each call is
// independent; a refresh is issued only after the store acknowledges the
// mutation.
type Controller struct {
	Store    Mutator
	Renderer *Renderer
	Board    *Board
	Log      *zap.Logger

	SignupTTL  time.Duration
	RemovalTTL time.Duration
}

func NewController(store Mutator, renderer *Renderer, board *Board, logger *zap.Logger) *Controller {
	return &Controller{
		Store:      store,
		Renderer:   renderer,
		Board:      board,
		Log:        logger,
		SignupTTL:  DefaultSignupTTL,
		RemovalTTL: DefaultRemovalTTL,
	}
}

// Signup registers email for activityName. On success the form is cleared
// and the view refreshed; otherwise the form keeps its values.
func (c *Controller) Signup(ctx context.Context, visitor, activityName, email string) Result {
	if activityName == "" {
		c.Board.SetDraft(visitor, Draft{Email: email})
		return Result{Message: c.Board.Show(visitor, msgSelectActivity, StatusError, c.SignupTTL)}
	}

	mctx, cancel := timeouts.WithTimeout(ctx, timeouts.Store(), c.Log, opSignup)
	msg, err := c.Store.Signup(mctx, activityName, email)
	cancel()

	if err != nil {
		c.Board.SetDraft(visitor, Draft{Activity: activityName, Email: email})
		text := c.failureText(err, opSignup, msgSignupRejected, msgSignupFailed)
		return Result{Message: c.Board.Show(visitor, text, StatusError, c.SignupTTL)}
	}

	c.Board.ClearDraft(visitor)
	shown := c.Board.Show(visitor, msg, StatusSuccess, c.SignupTTL)
	c.Renderer.Refresh(ctx)
	return Result{Message: shown, Refreshed: true}
}

// RemoveParticipant unregisters email from activityName and refreshes on
// success.
func (c *Controller) RemoveParticipant(ctx context.Context, visitor, activityName, email string) Result {
	mctx, cancel := timeouts.WithTimeout(ctx, timeouts.Store(), c.Log, opRemoval)
	msg, err := c.Store.Remove(mctx, activityName, email)
	cancel()

	if err != nil {
		text := c.failureText(err, opRemoval, msgRemovalRejected, msgRemovalFailed)
		return Result{Message: c.Board.Show(visitor, text, StatusError, c.RemovalTTL)}
	}

	shown := c.Board.Show(visitor, msg, StatusSuccess, c.RemovalTTL)
	c.Renderer.Refresh(ctx)
	return Result{Message: shown, Refreshed: true}
}

// failureText maps a store error to the message shown. Rejections prefer
// the server detail; anything without a usable response is a transport
// failure.
func (c *Controller) failureText(err error, op, rejected, failed string) string {
	var rej *storeclient.RejectedError
	if errors.As(err, &rej) {
		if rej.HasDetail {
			return rej.Detail
		}
		return rejected
	}
	c.Log.Warn("store call failed", zap.String("operation", op), zap.Error(err))
	return failed
}
