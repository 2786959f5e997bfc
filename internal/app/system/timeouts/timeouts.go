// Package timeouts provides centralized timeout values for I/O done on
// behalf of a request.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Store: one round trip to the ActivityStore HTTP API
//   - DB: a single backend query or conditional update
//   - Schema: index creation, table creation and seeding at startup
//
// Values are set once at startup with Configure; zero values keep the
// defaults.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultStore  = 10 * time.Second
	DefaultDB     = 5 * time.Second
	DefaultSchema = 60 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	store  = DefaultStore
	db     = DefaultDB
	schema = DefaultSchema
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Store returns the timeout for one ActivityStore request.
func Store() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return store
}

// DB returns the timeout for a single backend operation.
func DB() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// Schema returns the timeout for startup schema work.
func Schema() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return schema
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping   time.Duration
	Store  time.Duration
	DB     time.Duration
	Schema time.Duration
}

// Configure sets custom timeout values. Call it during startup, before
// handlers are built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Store > 0 {
		store = cfg.Store
	}
	if cfg.DB > 0 {
		db = cfg.DB
	}
	if cfg.Schema > 0 {
		schema = cfg.Schema
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, store, db, schema = DefaultPing, DefaultStore, DefaultDB, DefaultSchema
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Store: store, DB: db, Schema: schema}
}

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the deadline was what ended the operation.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Store(), h.Log, "signup")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
