package resultcache

import (
	"context"
	"sync"
	"time"

	"github.com/cropsense/leafscan/internal/domain/detection"
)

type cachedResult struct {
	payload   detection.Result
	expiresAt time.Time
}

// MemoryStore is an in-memory result cache for tests and cacheless deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedResult
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]cachedResult)}
}

// Get implements detection.ResultCache.
func (s *MemoryStore) Get(_ context.Context, key string) (detection.Result, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return detection.Result{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return detection.Result{}, false, nil
	}
	return entry.payload, true, nil
}

// Set caches the result with optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, result detection.Result, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[key] = cachedResult{payload: result, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ detection.ResultCache = (*MemoryStore)(nil)
