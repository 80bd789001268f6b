package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps per-client request windows in a mutex-guarded map.
// Windows are pruned on every read, and the map itself is bounded: once it
// tracks more than maxClients entries, clients whose windows have fully
// expired are swept out, so distinct one-off identifiers cannot grow the
// map forever.
type MemoryStore struct {
	mu         sync.Mutex
	windows    map[string][]time.Time
	maxClients int
}

// NewMemoryStore creates a MemoryStore bounded to maxClients tracked
// clients. A non-positive bound falls back to a sane default.
func NewMemoryStore(maxClients int) *MemoryStore {
	if maxClients <= 0 {
		maxClients = 10000
	}
	return &MemoryStore{
		windows:    make(map[string][]time.Time),
		maxClients: maxClients,
	}
}

// Ensure MemoryStore implements the Store interface
var _ Store = (*MemoryStore)(nil)

// Admit implements Store.Admit with the prune-on-read discipline: the stored
// window is replaced by its in-window suffix before the limit check, and a
// rejected request is never recorded.
func (s *MemoryStore) Admit(
	ctx context.Context,
	clientID string,
	now time.Time,
	limit int,
	window time.Duration,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := pruneWindow(s.windows[clientID], now, window)

	if len(kept) >= limit {
		s.windows[clientID] = kept
		return false, nil
	}

	s.windows[clientID] = append(kept, now)

	if len(s.windows) > s.maxClients {
		s.sweepExpired(now, window)
	}

	return true, nil
}

// TrackedClients returns the number of client windows currently held.
func (s *MemoryStore) TrackedClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// sweepExpired removes every client whose window holds no live timestamps.
// Callers must hold s.mu. The whole-map sweep is linear, but it only runs
// when the capacity bound is crossed.
func (s *MemoryStore) sweepExpired(now time.Time, window time.Duration) {
	for clientID, timestamps := range s.windows {
		if len(pruneWindow(timestamps, now, window)) == 0 {
			delete(s.windows, clientID)
		}
	}
}

// pruneWindow returns the timestamps still inside the trailing window.
func pruneWindow(timestamps []time.Time, now time.Time, window time.Duration) []time.Time {
	kept := timestamps[:0:0]
	for _, ts := range timestamps {
		if now.Sub(ts) < window {
			kept = append(kept, ts)
		}
	}
	return kept
}
