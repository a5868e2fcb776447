// Package store holds the certification authority singleton.
package store

import (
	"context"
	"fmt"
	"sync"

	id "medsim/pkg/domain"
)

// CommitHook receives the authority about to be installed. Returning an error
// aborts the transfer.
type CommitHook func(ctx context.Context, holder id.Identity) error

// Store is the single-writer handle on the current certification authority.
// It is an explicit value so independent instances can coexist in tests.
type Store struct {
	mu     sync.RWMutex
	holder id.Identity
	commit CommitHook
}

// New returns a store whose authority is initial.
func New(initial id.Identity) *Store {
	return &Store{holder: initial}
}

func (s *Store) SetCommitHook(hook CommitHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit = hook
}

// Current returns the current authority.
func (s *Store) Current() id.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holder
}

// IsAuthority reports whether caller currently holds the authority.
// An unset authority is held by nobody.
func (s *Store) IsAuthority(caller id.Identity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.holder.IsNil() && s.holder == caller
}

// Hold runs fn with the current holder while holding the read lock, so no
// Transfer can land until fn returns. fn must not transfer the authority.
func (s *Store) Hold(fn func(holder id.Identity) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.holder)
}

// Transfer runs validate against the current holder and, if it passes,
// installs next. Both happen under the write lock.
func (s *Store) Transfer(ctx context.Context, validate func(current id.Identity) error, next id.Identity) (id.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validate(s.holder); err != nil {
		return "", err
	}
	if s.commit != nil {
		if err := s.commit(ctx, next); err != nil {
			return "", fmt.Errorf("commit authority: %w", err)
		}
	}
	s.holder = next
	return next, nil
}

// Restore replaces the holder without validation or commit hook. Used when
// loading a durable snapshot.
func (s *Store) Restore(holder id.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holder = holder
}
