package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var doctorTTL = EntryOptions{Sliding: 5 * time.Minute, Absolute: 10 * time.Minute}

func newTestStore(t *testing.T, cfg MemoryConfig, clock *fakeClock) *MemoryStore {
	t.Helper()
	s, err := NewMemoryStore(cfg, WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMemoryStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, MemoryConfig{}, newFakeClock())

	require.NoError(t, s.Set(ctx, "k", []byte("v"), doctorTTL))

	got, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	// Returned bytes are a copy.
	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again)

	require.NoError(t, s.Remove(ctx, "k"))
	_, ok = s.Get(ctx, "k")
	assert.False(t, ok)

	assert.NoError(t, s.Remove(ctx, "never-set"))
}

func TestMemoryStore_SlidingExpiration(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := newTestStore(t, MemoryConfig{}, clock)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), doctorTTL))

	clock.Advance(4 * time.Minute)
	_, ok := s.Get(ctx, "k")
	require.True(t, ok, "read inside the sliding window")

	clock.Advance(4 * time.Minute)
	_, ok = s.Get(ctx, "k")
	require.True(t, ok, "previous read restarted the sliding window")

	clock.Advance(5*time.Minute + time.Second)
	_, ok = s.Get(ctx, "k")
	assert.False(t, ok, "idle longer than the sliding window")
}

func TestMemoryStore_AbsoluteExpirationIgnoresReads(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := newTestStore(t, MemoryConfig{}, clock)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), doctorTTL))

	for i := 0; i < 3; i++ {
		clock.Advance(3 * time.Minute)
		_, ok := s.Get(ctx, "k")
		require.True(t, ok, "minute %d", (i+1)*3)
	}

	clock.Advance(1*time.Minute + time.Second)
	_, ok := s.Get(ctx, "k")
	assert.False(t, ok, "older than the absolute window even though it was read recently")
}

func TestMemoryStore_SetResetsDeadlines(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := newTestStore(t, MemoryConfig{}, clock)

	require.NoError(t, s.Set(ctx, "k", []byte("old"), doctorTTL))
	clock.Advance(9 * time.Minute)
	require.NoError(t, s.Set(ctx, "k", []byte("new"), doctorTTL))
	clock.Advance(2 * time.Minute)

	got, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, MemoryConfig{MaxEntries: 2}, newFakeClock())

	require.NoError(t, s.Set(ctx, "a", []byte("A"), doctorTTL))
	require.NoError(t, s.Set(ctx, "b", []byte("B"), doctorTTL))

	_, ok := s.Get(ctx, "a")
	require.True(t, ok)

	require.NoError(t, s.Set(ctx, "c", []byte("C"), doctorTTL))

	_, ok = s.Get(ctx, "b")
	assert.False(t, ok, "b was least recently used")
	_, ok = s.Get(ctx, "a")
	assert.True(t, ok)
	_, ok = s.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryStore_DeleteExpiredSweepsWithoutReads(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := newTestStore(t, MemoryConfig{}, clock)

	require.NoError(t, s.Set(ctx, "short", []byte("v"), EntryOptions{Sliding: time.Minute}))
	require.NoError(t, s.Set(ctx, "long", []byte("v"), doctorTTL))

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, s.deleteExpired())
	assert.Equal(t, 1, s.len())
}

func TestMemoryStore_BackgroundCleanup(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(MemoryConfig{CleanupInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "ttl", []byte("v"), EntryOptions{Absolute: 20 * time.Millisecond}))

	assert.Eventually(t, func() bool {
		return s.len() == 0
	}, 500*time.Millisecond, 5*time.Millisecond)
}

func TestMemoryStore_CloseIsIdempotentAndStopsWrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(MemoryConfig{CleanupInterval: 10 * time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v"), doctorTTL), ErrClosed)
	assert.ErrorIs(t, s.Remove(ctx, "k"), ErrClosed)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(MemoryConfig{MaxEntries: 64, CleanupInterval: time.Millisecond})
	require.NoError(t, err)
	defer s.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%32)
				_ = s.Set(ctx, key, []byte{byte(g)}, doctorTTL)
				s.Get(ctx, key)
				if i%7 == 0 {
					_ = s.Remove(ctx, key)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.len(), 64)
}
