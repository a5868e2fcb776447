package adapters

import (
	"context"

	authorityService "medsim/internal/authority/service"
	"medsim/internal/instructor/ports"
	id "medsim/pkg/domain"
)

// AuthorityAdapter implements ports.AuthorityPort with the in-process authority service.
type AuthorityAdapter struct {
	authority *authorityService.Service
}

func NewAuthorityAdapter(authority *authorityService.Service) ports.AuthorityPort {
	return &AuthorityAdapter{authority: authority}
}

func (a *AuthorityAdapter) WithAuthority(ctx context.Context, caller id.Identity, fn func() error) error {
	return a.authority.WithAuthority(ctx, caller, fn)
}
