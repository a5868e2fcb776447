package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medsim/internal/scenario/models"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/httputil"
	"medsim/pkg/requestcontext"
)

// Service defines the scenario operations the handler needs.
type Service interface {
	Create(ctx context.Context, caller id.Identity, scenarioID id.ScenarioID, content models.Content) (id.ScenarioID, error)
	Update(ctx context.Context, caller id.Identity, scenarioID id.ScenarioID, content models.Content) (*models.Scenario, error)
	Get(ctx context.Context, scenarioID id.ScenarioID) (*models.Scenario, bool)
}

// Handler wires scenario endpoints to the scenario service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts scenario endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/scenarios", h.HandleCreate)
	r.Get("/scenarios/{id}", h.HandleGet)
	r.Put("/scenarios/{id}", h.HandleUpdate)
}

// HandleCreate handles POST /scenarios.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	scenarioID, err := h.service.Create(ctx, caller, req.parsedID, req.Content())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	scenario, _ := h.service.Get(ctx, scenarioID)
	httputil.WriteJSON(w, http.StatusCreated, FromScenario(scenario))
}

// HandleUpdate handles PUT /scenarios/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	scenarioID, err := id.ParseScenarioID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	scenario, err := h.service.Update(ctx, caller, scenarioID, req.Content())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromScenario(scenario))
}

// HandleGet handles GET /scenarios/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := id.ParseScenarioID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	scenario, found := h.service.Get(r.Context(), scenarioID)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "scenario not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromScenario(scenario))
}
