// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"sync"
	"time"

	"github.com/WatchBeam/clock"
	activitiesapifeature "github.com/dalemusser/activityhub/internal/app/features/activitiesapi"
	healthfeature "github.com/dalemusser/activityhub/internal/app/features/health"
	signupfeature "github.com/dalemusser/activityhub/internal/app/features/signup"
	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/dalemusser/activityhub/internal/app/system/visitor"
	"github.com/dalemusser/activityhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// pruneInterval is how often idle message areas are swept.
const pruneInterval = time.Minute

var (
	workersMu   sync.Mutex
	pruneWorker *workers.MessagePrune
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// ActivityHub serves the ActivityStore JSON API under /activities (unless
// the backend is "none"), the signup widget at / and a health check.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	client, err := storeclient.New(appCfg.StoreURL, &http.Client{}, logger.Named("storeclient"))
	if err != nil {
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	visitors := visitor.NewManager(appCfg.SessionName, appCfg.SessionKey, coreCfg.Env == "prod", logger)

	board := signupfeature.NewBoard(clock.C)
	renderer := signupfeature.NewRenderer(client, logger)
	controller := signupfeature.NewController(client, renderer, board, logger)
	controller.SignupTTL = appCfg.SignupMessageTTL
	controller.RemovalTTL = appCfg.RemovalMessageTTL

	startWorkers(workers.NewMessagePrune(board, logger, pruneInterval, appCfg.MessageIdlePrune))

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Store, appCfg.StoreBackend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// ActivityStore JSON API
	if deps.Store != nil {
		apiHandler := activitiesapifeature.NewHandler(deps.Store, logger)
		r.Mount("/activities", activitiesapifeature.Routes(apiHandler))
	}

	// Signup widget, keyed by the visitor cookie
	widgetHandler := signupfeature.NewHandler(renderer, controller, board, logger)
	r.Group(func(r chi.Router) {
		r.Use(visitors.Middleware)
		r.Mount("/", signupfeature.Routes(widgetHandler))
	})

	return r, nil
}

func startWorkers(w *workers.MessagePrune) {
	workersMu.Lock()
	defer workersMu.Unlock()
	if pruneWorker != nil {
		pruneWorker.Stop()
	}
	pruneWorker = w
	pruneWorker.Start()
}

func stopWorkers() {
	workersMu.Lock()
	defer workersMu.Unlock()
	if pruneWorker != nil {
		pruneWorker.Stop()
		pruneWorker = nil
	}
}
