package testutil

import (
	"net/http"

	id "medsim/pkg/domain"
	"medsim/pkg/requestcontext"
)

// WithCaller puts caller on the request context the way the bearer
// middleware does. An empty caller leaves the request anonymous.
func WithCaller(req *http.Request, caller string) *http.Request {
	if caller == "" {
		return req
	}
	return req.WithContext(requestcontext.WithCaller(req.Context(), id.Identity(caller)))
}
