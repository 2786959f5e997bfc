// internal/app/system/workers/messageprune.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pruner drops per-visitor state idle for longer than the given duration and
// reports how many entries it removed.
type Pruner interface {
	Prune(idle time.Duration) int
}

// MessagePrune is a background worker that forgets idle message areas.
type MessagePrune struct {
	board    Pruner
	log      *zap.Logger
	interval time.Duration
	idle     time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewMessagePrune creates a new prune worker.
//
// Parameters:
//   - board: the message board to prune
//   - logger: zap logger for logging
//   - interval: how often to run (e.g., 1 minute)
//   - idle: how long an area must be untouched before it is dropped
func NewMessagePrune(board Pruner, logger *zap.Logger, interval, idle time.Duration) *MessagePrune {
	return &MessagePrune{
		board:    board,
		log:      logger,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background prune loop.
func (w *MessagePrune) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("message prune worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle", w.idle))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *MessagePrune) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("message prune worker stopped")
}

func (w *MessagePrune) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.prune()
		}
	}
}

func (w *MessagePrune) prune() {
	if n := w.board.Prune(w.idle); n > 0 {
		w.log.Debug("pruned idle message areas", zap.Int("count", n))
	}
}
