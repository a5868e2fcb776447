// Package persistence snapshots registry state to a durable backend.
//
// Every registry is one bucket holding a JSON document of its full state.
// Buckets are restored once at start-up; afterwards each committed mutation
// rewrites its bucket before the mutation becomes visible, so a failed write
// leaves the registry unchanged.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"medsim/internal/platform/metrics"
	"medsim/pkg/platform/ledger"
	"medsim/pkg/platform/sentinel"
)

// Bucket names, one per registry.
const (
	BucketAuthority   = "authority"
	BucketInstructors = "instructors"
	BucketSimulators  = "simulators"
	BucketScenarios   = "scenarios"
	BucketSessions    = "sessions"
)

// Buckets lists every bucket in restore order.
var Buckets = []string{BucketAuthority, BucketInstructors, BucketSimulators, BucketScenarios, BucketSessions}

// Backend stores opaque bucket payloads. Load returns sentinel.ErrNotFound
// for a bucket that was never saved.
type Backend interface {
	Load(ctx context.Context, bucket string) ([]byte, error)
	Save(ctx context.Context, bucket string, payload []byte) error
	Close() error
}

// Snapshotter binds registries to a Backend. A Snapshotter without a backend
// binds nothing and every registry stays purely in memory.
type Snapshotter struct {
	backend Backend
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Snapshotter)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Snapshotter) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Snapshotter) {
		s.logger = logger
	}
}

func NewSnapshotter(backend Backend, opts ...Option) *Snapshotter {
	s := &Snapshotter{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether a backend is configured.
func (s *Snapshotter) Enabled() bool {
	return s.backend != nil
}

// Close releases the backend.
func (s *Snapshotter) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Bind restores l from bucket and installs a commit hook that rewrites the
// bucket on every mutation.
func Bind[T ledger.Record[T]](ctx context.Context, s *Snapshotter, bucket string, l *ledger.Ledger[T]) error {
	if !s.Enabled() {
		return nil
	}
	var state map[string]T
	found, err := s.load(ctx, bucket, &state)
	if err != nil {
		return err
	}
	if found {
		l.Import(state)
		s.logger.InfoContext(ctx, "registry restored", "bucket", bucket, "records", len(state))
	}
	l.SetCommitHook(func(ctx context.Context, state map[string]T) error {
		return s.save(ctx, bucket, state)
	})
	return nil
}

// BindValue restores a single value from bucket through restore and returns
// the hook that persists the next value. Without a backend the hook is nil.
func BindValue[V any](ctx context.Context, s *Snapshotter, bucket string, restore func(V)) (func(context.Context, V) error, error) {
	if !s.Enabled() {
		return nil, nil
	}
	var v V
	found, err := s.load(ctx, bucket, &v)
	if err != nil {
		return nil, err
	}
	if found {
		restore(v)
		s.logger.InfoContext(ctx, "value restored", "bucket", bucket)
	}
	return func(ctx context.Context, next V) error {
		return s.save(ctx, bucket, next)
	}, nil
}

// Export returns the raw payload of every saved bucket.
func (s *Snapshotter) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(Buckets))
	if !s.Enabled() {
		return out, nil
	}
	for _, bucket := range Buckets {
		payload, err := s.backend.Load(ctx, bucket)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", bucket, err)
		}
		out[bucket] = json.RawMessage(payload)
	}
	return out, nil
}

func (s *Snapshotter) load(ctx context.Context, bucket string, v any) (bool, error) {
	payload, err := s.backend.Load(ctx, bucket)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", bucket, err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", bucket, err)
	}
	return true, nil
}

func (s *Snapshotter) save(ctx context.Context, bucket string, v any) error {
	payload, err := json.Marshal(v)
	if err == nil {
		err = s.backend.Save(ctx, bucket, payload)
	}
	if s.metrics != nil {
		s.metrics.IncrementSnapshotWrite(bucket, err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "snapshot write failed", "bucket", bucket, "error", err)
		return fmt.Errorf("save %s: %w", bucket, err)
	}
	return nil
}
