package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medsim/internal/session/models"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/httputil"
	"medsim/pkg/requestcontext"
)

// Service defines the session operations the handler needs.
type Service interface {
	StartSession(ctx context.Context, caller id.Identity, sessionID id.SessionID, scenarioID id.ScenarioID, participants []string) (id.SessionID, error)
	CompleteSession(ctx context.Context, caller id.Identity, sessionID id.SessionID) (*models.Session, error)
	Get(ctx context.Context, sessionID id.SessionID) (*models.Session, bool)
}

// Handler wires session endpoints to the session service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts session endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sessions", h.HandleStart)
	r.Get("/sessions/{id}", h.HandleGet)
	r.Post("/sessions/{id}/complete", h.HandleComplete)
}

// HandleStart handles POST /sessions.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[StartRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	sessionID, err := h.service.StartSession(ctx, caller, req.parsedSessionID, req.parsedScenarioID, req.Participants)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	session, _ := h.service.Get(ctx, sessionID)
	httputil.WriteJSON(w, http.StatusCreated, FromSession(session))
}

// HandleComplete handles POST /sessions/{id}/complete.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	session, err := h.service.CompleteSession(r.Context(), caller, sessionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSession(session))
}

// HandleGet handles GET /sessions/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	session, found := h.service.Get(r.Context(), sessionID)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "session not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSession(session))
}
