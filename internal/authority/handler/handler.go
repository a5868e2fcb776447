package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "medsim/pkg/domain"
	"medsim/pkg/platform/httputil"
	"medsim/pkg/requestcontext"
)

// Service defines the authority operations the handler needs.
type Service interface {
	SetAuthority(ctx context.Context, caller, newAuthority id.Identity) (id.Identity, error)
	Current(ctx context.Context) id.Identity
}

// Handler exposes the certification authority.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts authority endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/authority", h.HandleGet)
	r.Put("/authority", h.HandleSet)
}

// HandleGet handles GET /authority.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, AuthorityResponse{
		Authority: h.service.Current(r.Context()).String(),
	})
}

// HandleSet handles PUT /authority.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := httputil.RequireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetAuthorityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	next, err := h.service.SetAuthority(ctx, caller, req.parsed)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuthorityResponse{Authority: next.String()})
}
