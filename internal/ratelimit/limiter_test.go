package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock provides a controllable time source for the limiter.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
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

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *fakeClock) {
	t.Helper()
	limiter, err := NewLimiter(slog.Default(), NewMemoryStore(100), limit, window)
	require.NoError(t, err)

	clock := newFakeClock()
	limiter.now = clock.Now
	return limiter, clock
}

func TestNewLimiterValidation(t *testing.T) {
	store := NewMemoryStore(10)

	_, err := NewLimiter(slog.Default(), nil, 10, time.Hour)
	assert.Error(t, err, "nil store must be rejected")

	_, err = NewLimiter(slog.Default(), store, 0, time.Hour)
	assert.Error(t, err, "zero limit must be rejected")

	_, err = NewLimiter(slog.Default(), store, 10, 0)
	assert.Error(t, err, "zero window must be rejected")

	limiter, err := NewLimiter(nil, store, 10, time.Hour)
	require.NoError(t, err, "nil logger falls back to the default")
	assert.NotNil(t, limiter)
}

func TestLimiterRejectsOverLimit(t *testing.T) {
	const limit = 10
	limiter, clock := newTestLimiter(t, limit, time.Hour)
	ctx := context.Background()

	for i := 0; i < limit; i++ {
		assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "request %d should be admitted", i+1)
		clock.Advance(time.Second)
	}

	assert.False(t, limiter.Allow(ctx, "1.2.3.4"),
		"request %d within the window must be rejected", limit+1)
}

func TestLimiterAdmitsAgainAfterWindowExpiry(t *testing.T) {
	limiter, clock := newTestLimiter(t, 2, time.Hour)
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "client"))
	clock.Advance(10 * time.Minute)
	require.True(t, limiter.Allow(ctx, "client"))
	require.False(t, limiter.Allow(ctx, "client"))

	// Once the earliest recorded timestamp ages out, one slot frees up.
	clock.Advance(50*time.Minute + time.Second)
	assert.True(t, limiter.Allow(ctx, "client"))

	// The second recorded timestamp is still live, so the window is full again.
	assert.False(t, limiter.Allow(ctx, "client"))
}

func TestLimiterRejectionIsNotRecorded(t *testing.T) {
	limiter, clock := newTestLimiter(t, 1, time.Hour)
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "client"))

	// Hammer the limiter while rejected; none of these may consume quota.
	for i := 0; i < 20; i++ {
		require.False(t, limiter.Allow(ctx, "client"))
		clock.Advance(time.Minute)
	}

	// 20 minutes of rejections later, the single admitted entry expires on
	// schedule. If rejections were recorded the window would still be full.
	clock.Advance(41 * time.Minute)
	assert.True(t, limiter.Allow(ctx, "client"))
}

func TestLimiterClientsAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Hour)
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "alice"))
	require.False(t, limiter.Allow(ctx, "alice"))

	assert.True(t, limiter.Allow(ctx, "bob"),
		"a saturated window for one client must not affect another")
}

func TestLimiterConcurrentAdmitsStayWithinLimit(t *testing.T) {
	const limit = 25
	limiter, err := NewLimiter(slog.Default(), NewMemoryStore(100), limit, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(ctx, "shared-client") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, admitted,
		"concurrent admits for one client must not lose updates or overshoot")
}

// failingStore simulates a broken backing store.
type failingStore struct{}

func (failingStore) Admit(context.Context, string, time.Time, int, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	limiter, err := NewLimiter(slog.Default(), failingStore{}, 1, time.Hour)
	require.NoError(t, err)

	assert.True(t, limiter.Allow(context.Background(), "client"),
		"a store failure must not reject traffic")
}

func TestMemoryStoreSweepsExpiredClients(t *testing.T) {
	store := NewMemoryStore(5)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// Fill past capacity with clients whose windows all expire together.
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		_, err := store.Admit(ctx, id, now, 10, time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 5, store.TrackedClients())

	// A sixth client two minutes later crosses the bound; the five expired
	// windows are swept and only the new client remains.
	_, err := store.Admit(ctx, "f", now.Add(2*time.Minute), 10, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, store.TrackedClients())
}

func TestMemoryStoreKeepsLiveClientsDuringSweep(t *testing.T) {
	store := NewMemoryStore(2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	_, err := store.Admit(ctx, "expired", now, 10, time.Minute)
	require.NoError(t, err)
	_, err = store.Admit(ctx, "live", now.Add(50*time.Second), 10, time.Minute)
	require.NoError(t, err)

	_, err = store.Admit(ctx, "new", now.Add(70*time.Second), 10, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 2, store.TrackedClients(), "only the fully expired window is swept")
}
