package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medsim/internal/simulator/models"
	"medsim/internal/simulator/service"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/httputil"
	"medsim/pkg/requestcontext"
)

// Service defines the simulator operations the handler needs.
type Service interface {
	Register(ctx context.Context, caller id.Identity, in service.RegisterInput) (id.SimulatorID, error)
	RecordMaintenance(ctx context.Context, caller id.Identity, simulatorID id.SimulatorID) (*models.Simulator, error)
	SetStatus(ctx context.Context, caller id.Identity, simulatorID id.SimulatorID, status string) (*models.Simulator, error)
	Get(ctx context.Context, simulatorID id.SimulatorID) (*models.Simulator, bool)
	GetOwner(ctx context.Context, simulatorID id.SimulatorID) (id.Identity, bool)
}

// Handler wires simulator endpoints to the simulator service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts simulator endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/simulators", h.HandleRegister)
	r.Get("/simulators/{id}", h.HandleGet)
	r.Get("/simulators/{id}/owner", h.HandleGetOwner)
	r.Post("/simulators/{id}/maintenance", h.HandleRecordMaintenance)
	r.Put("/simulators/{id}/status", h.HandleSetStatus)
}

// HandleRegister handles POST /simulators.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	simulatorID, err := h.service.Register(ctx, caller, req.Input())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	simulator, _ := h.service.Get(ctx, simulatorID)
	httputil.WriteJSON(w, http.StatusCreated, FromSimulator(simulator))
}

// HandleRecordMaintenance handles POST /simulators/{id}/maintenance.
func (h *Handler) HandleRecordMaintenance(w http.ResponseWriter, r *http.Request) {
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	simulatorID, ok := simulatorIDParam(w, r)
	if !ok {
		return
	}
	simulator, err := h.service.RecordMaintenance(r.Context(), caller, simulatorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSimulator(simulator))
}

// HandleSetStatus handles PUT /simulators/{id}/status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	simulatorID, ok := simulatorIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	simulator, err := h.service.SetStatus(ctx, caller, simulatorID, req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSimulator(simulator))
}

// HandleGet handles GET /simulators/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	simulatorID, ok := simulatorIDParam(w, r)
	if !ok {
		return
	}
	simulator, found := h.service.Get(r.Context(), simulatorID)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "simulator not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSimulator(simulator))
}

// HandleGetOwner handles GET /simulators/{id}/owner.
func (h *Handler) HandleGetOwner(w http.ResponseWriter, r *http.Request) {
	simulatorID, ok := simulatorIDParam(w, r)
	if !ok {
		return
	}
	owner, found := h.service.GetOwner(r.Context(), simulatorID)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "simulator not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{
		SimulatorID: simulatorID.String(),
		Owner:       owner.String(),
	})
}

func simulatorIDParam(w http.ResponseWriter, r *http.Request) (id.SimulatorID, bool) {
	simulatorID, err := id.ParseSimulatorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return simulatorID, true
}
