// internal/app/features/signup/renderer.go
package signup

import (
	"context"
	"errors"
	"sync"

	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/dalemusser/activityhub/internal/app/system/timeouts"
	"github.com/dalemusser/activityhub/internal/domain/models"
	"go.uber.org/zap"
)

// Lister fetches the activity snapshot.
type Lister interface {
	List(ctx context.Context) (models.Collection, error)
}

// Renderer owns the widget's view state. Every Refresh replaces it wholesale
// from a fresh snapshot.
type Renderer struct {
	Store Lister
	Log   *zap.Logger

	mu   sync.Mutex
	view View
}

func NewRenderer(store Lister, logger *zap.Logger) *Renderer {
	return &Renderer{
		Store: store,
		Log:   logger,
		view:  emptyView(),
	}
}

// Refresh pulls the activity list and rebuilds the view. On failure the list
// is replaced by the failure notice and the select keeps its prior options.
func (r *Renderer) Refresh(ctx context.Context) View {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Store(), r.Log, "list activities")
	defer cancel()

	col, err := r.Store.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.logLoadFailure(err)
		r.view = View{Options: r.view.Options, Notice: LoadFailedNotice}
		return r.view
	}
	r.view = BuildView(col)
	return r.view
}

// Current returns the last built view without touching the network.
func (r *Renderer) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

func (r *Renderer) logLoadFailure(err error) {
	var malformed *storeclient.MalformedError
	if errors.As(err, &malformed) {
		r.Log.Error("activity list is malformed", zap.Error(err))
		return
	}
	r.Log.Warn("failed to load activities", zap.Error(err))
}
