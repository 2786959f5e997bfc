// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Store backends.
const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	// BackendNone serves only the widget, against a store elsewhere.
	BackendNone = "none"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS).
type AppConfig struct {
	// Which ActivityStore backend this process serves under /activities.
	StoreBackend string
	// Base URL the widget uses to reach the ActivityStore API.
	StoreURL string

	// MongoDB connection configuration
	MongoURI      string
	MongoDatabase string

	// Postgres connection configuration
	PostgresDSN string

	// Visitor cookie configuration
	SessionKey  string // Secret key for signing visitor cookies (random per process if blank)
	SessionName string // Cookie name

	// Widget message display
	SignupMessageTTL  time.Duration
	RemovalMessageTTL time.Duration
	MessageIdlePrune  time.Duration // how long an idle visitor's message area is kept

	// Per-request timeout for widget calls to the store
	StoreTimeout time.Duration
}
