// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	activitystore "github.com/dalemusser/activityhub/internal/app/store/activities"
	"github.com/dalemusser/activityhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the configured ActivityStore backend.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	switch appCfg.StoreBackend {
	case BackendMemory:
		deps.Store = activitystore.NewMemory(activitystore.DefaultActivities())
		logger.Info("using in-memory activity store")

	case BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
		}
		pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if err := client.Ping(pctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Store = activitystore.NewMongo(deps.MongoDatabase)
		logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	case BackendPostgres:
		pool, err := pgxpool.New(ctx, appCfg.PostgresDSN)
		if err != nil {
			return DBDeps{}, fmt.Errorf("postgres connect: %w", err)
		}
		pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if err := pool.Ping(pctx); err != nil {
			pool.Close()
			return DBDeps{}, fmt.Errorf("postgres ping: %w", err)
		}
		deps.PostgresPool = pool
		deps.Store = activitystore.NewPostgres(pool)
		logger.Info("connected to Postgres")

	case BackendNone:
		logger.Info("no local activity store; widget uses store_url",
			zap.String("store_url", appCfg.StoreURL))
	}

	return deps, nil
}

// EnsureSchema creates indexes or tables for the backend and seeds the
// default activities into an empty store.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Schema(), logger, "ensure schema")
	defer cancel()

	var (
		seeded int
		err    error
	)
	switch s := deps.Store.(type) {
	case *activitystore.Mongo:
		if err := s.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		seeded, err = s.Seed(ctx, activitystore.DefaultActivities())
	case *activitystore.Postgres:
		if err := s.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
		seeded, err = s.Seed(ctx, activitystore.DefaultActivities())
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	if seeded > 0 {
		logger.Info("seeded default activities", zap.Int("count", seeded))
	}
	return nil
}
