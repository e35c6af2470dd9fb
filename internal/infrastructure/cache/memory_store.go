package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMaxEntries = 1024

type MemoryConfig struct {
	// MaxEntries bounds the store; the least recently used entry is evicted
	// first. Values <= 0 fall back to 1024.
	MaxEntries int
	// CleanupInterval <= 0 disables the background sweep. Expired entries
	// are still dropped lazily on read.
	CleanupInterval time.Duration
}

// MemoryStore is a process-local Store with sliding and absolute expiration.
// It owns a cleanup goroutine; call Close to stop it.
type MemoryStore struct {
	mu    sync.Mutex
	items *lru.Cache[string, *memoryEntry]
	now   func() time.Time

	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	cleanupEvery time.Duration
	closed       bool
}

type memoryEntry struct {
	value      []byte
	lastAccess time.Time
	expiresAt  time.Time // absolute deadline, zero means none
	sliding    time.Duration
}

func (e *memoryEntry) expired(now time.Time) bool {
	if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
		return true
	}
	return e.sliding > 0 && now.Sub(e.lastAccess) > e.sliding
}

type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(cfg MemoryConfig, opts ...MemoryOption) (*MemoryStore, error) {
	size := cfg.MaxEntries
	if size <= 0 {
		size = defaultMaxEntries
	}
	items, err := lru.New[string, *memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &MemoryStore{
		items:        items,
		now:          time.Now,
		ctx:          ctx,
		cancel:       cancel,
		cleanupEvery: cfg.CleanupInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupEvery > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}

	return s, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items.Get(key)
	if !ok {
		return nil, false
	}

	now := s.now()
	if e.expired(now) {
		s.items.Remove(key)
		return nil, false
	}

	e.lastAccess = now
	return cloneBytes(e.value), true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, opts EntryOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	now := s.now()
	e := &memoryEntry{
		value:      cloneBytes(value),
		lastAccess: now,
		sliding:    opts.Sliding,
	}
	if opts.Absolute > 0 {
		e.expiresAt = now.Add(opts.Absolute)
	}

	s.items.Add(key, e)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.items.Remove(key)
	return nil
}

// len includes expired entries that have not been swept yet.
func (s *MemoryStore) len() int {
	return s.items.Len()
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.deleteExpired()
		}
	}
}

func (s *MemoryStore) deleteExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for _, key := range s.items.Keys() {
		// Peek leaves recency untouched.
		e, ok := s.items.Peek(key)
		if ok && e.expired(now) {
			s.items.Remove(key)
			removed++
		}
	}
	return removed
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
