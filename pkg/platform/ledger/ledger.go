// Package ledger is the keyed record arena shared by every registry.
//
// A Ledger never deletes: keys are claimed once and records are only replaced
// in place. Every write holds one exclusive lock for the whole
// check-then-act sequence, so callers get the serialized, all-or-nothing
// semantics the registries rely on without their own locking.
package ledger

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"medsim/pkg/platform/sentinel"
)

// Record is implemented by every value a Ledger holds. Clone must return a
// deep copy; the ledger never hands out or retains caller-owned values.
type Record[T any] interface {
	Clone() T
}

// CommitHook receives the complete post-write state before it becomes
// visible. Returning an error aborts the write and leaves the ledger unchanged.
type CommitHook[T any] func(ctx context.Context, state map[string]T) error

// Ledger is a concurrency-safe, append-or-replace keyed store.
type Ledger[T Record[T]] struct {
	mu      sync.RWMutex
	records map[string]T
	commit  CommitHook[T]
}

// New returns an empty ledger.
func New[T Record[T]]() *Ledger[T] {
	return &Ledger[T]{records: make(map[string]T)}
}

// SetCommitHook installs (or clears, with nil) the durable commit hook.
func (l *Ledger[T]) SetCommitHook(hook CommitHook[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commit = hook
}

// Find returns a copy of the record under key, or sentinel.ErrNotFound.
func (l *Ledger[T]) Find(key string) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[key]
	if !ok {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return rec.Clone(), nil
}

// Contains reports whether key has been claimed.
func (l *Ledger[T]) Contains(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.records[key]
	return ok
}

// Len returns the number of records.
func (l *Ledger[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Insert claims key for rec. Returns sentinel.ErrAlreadyExists when the key is
// taken; the existing record is never touched.
func (l *Ledger[T]) Insert(ctx context.Context, key string, rec T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.records[key]; ok {
		return sentinel.ErrAlreadyExists
	}
	return l.apply(ctx, key, rec.Clone())
}

// Execute runs validate against the current record and, when it passes,
// applies mutate to a copy and commits the copy. Both run under the write
// lock. Returns sentinel.ErrNotFound for unknown keys and validate's error
// verbatim; in either case nothing changes.
func (l *Ledger[T]) Execute(ctx context.Context, key string, validate func(T) error, mutate func(T)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	current, ok := l.records[key]
	if !ok {
		return zero, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(current.Clone()); err != nil {
			return zero, err
		}
	}
	next := current.Clone()
	mutate(next)
	if err := l.apply(ctx, key, next); err != nil {
		return zero, err
	}
	return next.Clone(), nil
}

// apply commits rec under key. Caller holds the write lock.
func (l *Ledger[T]) apply(ctx context.Context, key string, rec T) error {
	if l.commit != nil {
		staged := maps.Clone(l.records)
		staged[key] = rec
		if err := l.commit(ctx, staged); err != nil {
			return fmt.Errorf("commit %q: %w", key, err)
		}
	}
	l.records[key] = rec
	return nil
}

// Export returns a deep copy of every record.
func (l *Ledger[T]) Export() map[string]T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]T, len(l.records))
	for k, v := range l.records {
		out[k] = v.Clone()
	}
	return out
}

// Import replaces the ledger's contents with a copy of state. Used when
// restoring from a durable snapshot; it bypasses the commit hook.
func (l *Ledger[T]) Import(state map[string]T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = make(map[string]T, len(state))
	for k, v := range state {
		l.records[k] = v.Clone()
	}
}
