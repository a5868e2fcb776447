package service

import (
	"context"

	"medsim/internal/platform/instrument"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
)

const registryName = "authority"

// Store is the authority state handle.
type Store interface {
	Current() id.Identity
	IsAuthority(caller id.Identity) bool
	Hold(fn func(holder id.Identity) error) error
	Transfer(ctx context.Context, validate func(current id.Identity) error, next id.Identity) (id.Identity, error)
}

// Service gates authority transfers.
type Service struct {
	store Store
	rec   *instrument.Recorder
}

func New(store Store, opts ...instrument.Option) *Service {
	return &Service{
		store: store,
		rec:   instrument.New(registryName, opts...),
	}
}

// SetAuthority hands the certification authority to newAuthority. Only the
// current authority may do this.
func (s *Service) SetAuthority(ctx context.Context, caller, newAuthority id.Identity) (id.Identity, error) {
	ctx, op := s.rec.Start(ctx, "set_authority", caller, newAuthority.String())
	next, err := s.store.Transfer(ctx,
		func(current id.Identity) error { return requireHolder(current, caller) },
		newAuthority,
	)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer authority")
	}
	if err := op.Finish(err, audit.EventAuthorityTransferred); err != nil {
		return "", err
	}
	return next, nil
}

// Current returns the identity holding the authority.
func (s *Service) Current(_ context.Context) id.Identity {
	return s.store.Current()
}

// IsAuthority reports whether caller currently holds the authority.
func (s *Service) IsAuthority(_ context.Context, caller id.Identity) bool {
	return s.store.IsAuthority(caller)
}

// WithAuthority runs fn only if caller holds the authority, and keeps the
// authority from changing hands until fn returns.
func (s *Service) WithAuthority(_ context.Context, caller id.Identity, fn func() error) error {
	return s.store.Hold(func(holder id.Identity) error {
		if err := requireHolder(holder, caller); err != nil {
			return err
		}
		return fn()
	})
}

func requireHolder(holder, caller id.Identity) error {
	if holder.IsNil() || holder != caller {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the certification authority")
	}
	return nil
}
