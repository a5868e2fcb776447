package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medsim/internal/instructor/models"
	"medsim/internal/instructor/service"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/httputil"
	"medsim/pkg/requestcontext"
)

// Service defines the instructor operations the handler needs.
type Service interface {
	Register(ctx context.Context, caller id.Identity, in service.RegisterInput) (id.InstructorID, error)
	Renew(ctx context.Context, caller id.Identity, instructorID id.InstructorID, validForDays int) (*models.Instructor, error)
	Deactivate(ctx context.Context, caller id.Identity, instructorID id.InstructorID) (*models.Instructor, error)
	Get(ctx context.Context, instructorID id.InstructorID) (*models.Instructor, bool)
	IsCertified(ctx context.Context, instructorID id.InstructorID) bool
}

// Handler wires instructor endpoints to the instructor service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts instructor endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/instructors", h.HandleRegister)
	r.Get("/instructors/{id}", h.HandleGet)
	r.Get("/instructors/{id}/certified", h.HandleIsCertified)
	r.Post("/instructors/{id}/renew", h.HandleRenew)
	r.Post("/instructors/{id}/deactivate", h.HandleDeactivate)
}

// HandleRegister handles POST /instructors.
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

	instructorID, err := h.service.Register(ctx, caller, req.Input())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	instructor, _ := h.service.Get(ctx, instructorID)
	httputil.WriteJSON(w, http.StatusCreated, FromInstructor(instructor))
}

// HandleRenew handles POST /instructors/{id}/renew.
func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	instructorID, ok := instructorIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RenewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	instructor, err := h.service.Renew(ctx, caller, instructorID, req.ValidForDays)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInstructor(instructor))
}

// HandleDeactivate handles POST /instructors/{id}/deactivate.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	instructorID, ok := instructorIDParam(w, r)
	if !ok {
		return
	}

	instructor, err := h.service.Deactivate(ctx, caller, instructorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInstructor(instructor))
}

// HandleGet handles GET /instructors/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := instructorIDParam(w, r)
	if !ok {
		return
	}
	instructor, found := h.service.Get(r.Context(), instructorID)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "instructor not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInstructor(instructor))
}

// HandleIsCertified handles GET /instructors/{id}/certified. Unknown
// instructors are reported as not certified rather than missing.
func (h *Handler) HandleIsCertified(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := instructorIDParam(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CertifiedResponse{
		InstructorID: instructorID.String(),
		Certified:    h.service.IsCertified(r.Context(), instructorID),
	})
}

func instructorIDParam(w http.ResponseWriter, r *http.Request) (id.InstructorID, bool) {
	instructorID, err := id.ParseIdentity(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return instructorID, true
}
