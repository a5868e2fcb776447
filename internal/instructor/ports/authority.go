// Package ports defines what the instructor registry needs from other modules.
package ports

import (
	"context"

	id "medsim/pkg/domain"
)

// AuthorityPort gates instructor writes on the certification authority.
type AuthorityPort interface {
	// WithAuthority runs fn if caller is the authority, with the authority
	// pinned until fn returns. Otherwise it returns an Unauthorized error.
	WithAuthority(ctx context.Context, caller id.Identity, fn func() error) error
}
