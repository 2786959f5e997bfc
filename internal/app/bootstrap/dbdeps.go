// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	activitystore "github.com/dalemusser/activityhub/internal/app/store/activities"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. Only the fields
// of the configured backend are set; Store is nil for BackendNone.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	PostgresPool  *pgxpool.Pool

	Store activitystore.Store
}
