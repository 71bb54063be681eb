package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/suninet/suninet/internal/billing"
	"github.com/suninet/suninet/internal/importer"
	"github.com/suninet/suninet/internal/observability"
	"github.com/suninet/suninet/internal/platform/httpx"
	"github.com/suninet/suninet/internal/reports"
	"github.com/suninet/suninet/internal/subscribers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SubscribersHandler *subscribers.Handler
	BillingHandler     *billing.Handler
	ReportsHandler     *reports.Handler
	ImporterHandler    *importer.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			env := "development"
			if params.Config != nil {
				env = params.Config.AppEnv
			}
			httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "env": env})
		})

		api.Route("/customers", func(customers chi.Router) {
			params.SubscribersHandler.MountRoutes(customers)
			params.BillingHandler.MountPayments(customers)
		})

		params.BillingHandler.MountStats(api)
		params.ReportsHandler.MountRoutes(api)
		params.ImporterHandler.MountRoutes(api)
	})

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	return r
}
