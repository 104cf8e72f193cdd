package memdb

import (
	"context"
	"slices"
	"sync"

	"github.com/hedisam/tonrpc/internal/cache"
	"github.com/hedisam/tonrpc/internal/ringbuffer"
)

// Store is a bounded in-memory cache store. Once full, the oldest inserted entry is
// evicted first.
type Store struct {
	entries map[string][]byte
	order   *ringbuffer.RingBuffer[string]
	mu      sync.RWMutex
}

func New(opts ...Option) *Store {
	cfg := &config{memSize: DefaultMemSize}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Store{
		entries: make(map[string][]byte, cfg.memSize),
		order:   ringbuffer.New[string](uint(cfg.memSize)),
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return slices.Clone(value), nil
}

// Set stores a copy of value. Overwriting a key keeps its original eviction position.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.entries[key] = slices.Clone(value)
		return nil
	}

	if s.order.IsFull() {
		oldest, _ := s.order.Pop()
		delete(s.entries, oldest)
	}
	s.order.Push(key)
	s.entries[key] = slices.Clone(value)

	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
