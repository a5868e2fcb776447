// Package fallback guards a remote audit store with a circuit breaker and
// keeps events in a local store while the remote one is failing.
package fallback

import (
	"context"
	"log/slog"

	audit "medsim/pkg/platform/audit"
	"medsim/pkg/platform/circuit"
)

// Store writes every event to primary. Events primary rejects go to
// secondary once the breaker has opened.
type Store struct {
	primary   audit.Store
	secondary audit.Store
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

func New(primary, secondary audit.Store, breaker *circuit.Breaker, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		primary:   primary,
		secondary: secondary,
		breaker:   breaker,
		logger:    logger,
	}
}

// Append returns the primary error only while the breaker is still closed.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	err := s.primary.Append(ctx, event)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "audit sink recovered", "breaker", s.breaker.Name())
		}
		return nil
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "audit sink failing, using local fallback",
			"breaker", s.breaker.Name(),
			"error", err,
		)
	}
	if !useFallback {
		return err
	}
	return s.secondary.Append(ctx, event)
}

// Close closes primary when it supports it.
func (s *Store) Close() {
	if c, ok := s.primary.(interface{ Close() }); ok {
		c.Close()
	}
}
