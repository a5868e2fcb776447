// Package httptransport mounts every registry handler under /v1.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medsim/internal/app"
	authorityHandler "medsim/internal/authority/handler"
	instructorHandler "medsim/internal/instructor/handler"
	"medsim/internal/platform/metrics"
	"medsim/internal/platform/middleware"
	scenarioHandler "medsim/internal/scenario/handler"
	sessionHandler "medsim/internal/session/handler"
	simulatorHandler "medsim/internal/simulator/handler"
	"medsim/pkg/platform/httputil"
)

// NewRouter wires the public API. m may be nil.
func NewRouter(a *app.App, validator middleware.JWTValidator, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Recover(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(validator, logger))
		authorityHandler.New(a.Authority, logger).Register(r)
		instructorHandler.New(a.Instructors, logger).Register(r)
		simulatorHandler.New(a.Simulators, logger).Register(r)
		scenarioHandler.New(a.Scenarios, logger).Register(r)
		sessionHandler.New(a.Sessions, logger).Register(r)
	})
	return r
}
