// Package memory is a process-local persistence backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"medsim/pkg/platform/sentinel"
)

type Backend struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

func New() *Backend {
	return &Backend{buckets: make(map[string][]byte)}
}

func (b *Backend) Load(_ context.Context, bucket string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	payload, ok := b.buckets[bucket]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return slices.Clone(payload), nil
}

func (b *Backend) Save(_ context.Context, bucket string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets[bucket] = slices.Clone(payload)
	return nil
}

func (b *Backend) Close() error { return nil }
