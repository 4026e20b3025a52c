// Package http assembles the service's HTTP surface: middleware chain,
// health and metrics endpoints, and the time log routes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	timeloghandler "worklog/internal/timelog/handler"
	authmw "worklog/pkg/platform/middleware/auth"
	requestmw "worklog/pkg/platform/middleware/request"
	requesttimemw "worklog/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger         *slog.Logger
	TimeLogHandler *timeloghandler.Handler
	TokenValidator authmw.TokenValidator
	HealthChecks   []func() error
}

// NewRouter builds the full route tree. Identity resolution runs on every
// request; the time log routes additionally require an authenticated caller,
// and the administrative listing requires an elevated role.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestmw.Middleware)
	r.Use(requesttimemw.Middleware)
	r.Use(authmw.Principal(deps.TokenValidator, deps.Logger))

	r.Get("/healthz", handleHealth(deps.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequirePrincipal(deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAnyRole(deps.Logger, timeloghandler.ElevatedRoles()...))
			deps.TimeLogHandler.RegisterAdmin(r)
		})

		deps.TimeLogHandler.Register(r)
	})

	return r
}

func handleHealth(checks []func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
