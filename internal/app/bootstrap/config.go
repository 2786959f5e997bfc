// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/activityhub/internal/app/features/signup"
	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/dalemusser/activityhub/internal/app/system/timeouts"
	"github.com/dalemusser/activityhub/internal/app/system/visitor"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ActivityHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: store_backend, mongo_uri, etc.
//   - Environment variables: ACTIVITYHUB_STORE_BACKEND, ACTIVITYHUB_MONGO_URI, etc.
//   - Command-line flags: --store_backend, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: BackendMemory, Desc: "ActivityStore backend: 'memory', 'mongo', 'postgres' or 'none'"},
	{Name: "store_url", Default: "http://localhost:8080", Desc: "Base URL of the ActivityStore API used by the widget"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "activity_hub", Desc: "MongoDB database name"},
	{Name: "postgres_dsn", Default: "", Desc: "Postgres connection string (required for the postgres backend)"},

	{Name: "session_key", Default: "", Desc: "Visitor cookie signing key (blank: random per process)"},
	{Name: "session_name", Default: visitor.DefaultCookieName, Desc: "Visitor cookie name"},

	{Name: "signup_message_ttl", Default: "5s", Desc: "How long signup messages stay visible"},
	{Name: "removal_message_ttl", Default: "4s", Desc: "How long removal messages stay visible"},
	{Name: "message_idle_prune", Default: "30m", Desc: "Drop a visitor's message area after this much inactivity"},
	{Name: "store_timeout", Default: "10s", Desc: "Timeout for one widget call to the ActivityStore"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, ACTIVITYHUB_* for app) and
// flags, merged with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ACTIVITYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend: strings.ToLower(strings.TrimSpace(appValues.String("store_backend"))),
		StoreURL:     appValues.String("store_url"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),
		PostgresDSN:   appValues.String("postgres_dsn"),

		SessionKey:  appValues.String("session_key"),
		SessionName: appValues.String("session_name"),

		SignupMessageTTL:  appValues.Duration("signup_message_ttl", signup.DefaultSignupTTL),
		RemovalMessageTTL: appValues.Duration("removal_message_ttl", signup.DefaultRemovalTTL),
		MessageIdlePrune:  appValues.Duration("message_idle_prune", 30*time.Minute),
		StoreTimeout:      appValues.Duration("store_timeout", timeouts.DefaultStore),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Backend settings are checked before anything connects so a typo fails
// startup with a clear message.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case BackendMemory, BackendNone:
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo backend requires mongo_database")
		}
	case BackendPostgres:
		if appCfg.PostgresDSN == "" {
			return fmt.Errorf("postgres backend requires postgres_dsn")
		}
		if _, err := pgxpool.ParseConfig(appCfg.PostgresDSN); err != nil {
			logger.Error("invalid Postgres DSN", zap.Error(err))
			return fmt.Errorf("invalid Postgres DSN: %w", err)
		}
	default:
		return fmt.Errorf("unknown store_backend %q (want memory, mongo, postgres or none)", appCfg.StoreBackend)
	}

	if _, err := storeclient.New(appCfg.StoreURL, nil, logger); err != nil {
		return fmt.Errorf("invalid store_url: %w", err)
	}

	for name, d := range map[string]time.Duration{
		"signup_message_ttl":  appCfg.SignupMessageTTL,
		"removal_message_ttl": appCfg.RemovalMessageTTL,
		"message_idle_prune":  appCfg.MessageIdlePrune,
		"store_timeout":       appCfg.StoreTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}

	return nil
}
