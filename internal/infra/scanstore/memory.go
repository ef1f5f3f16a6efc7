package scanstore

import (
	"context"
	"sync"

	"github.com/cropsense/leafscan/internal/domain/detection"
)

// MemoryStore retains uploaded images in process memory. It returns no public
// URL, so responses built on top of it simply omit image_url.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put records the image bytes under key.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[key] = cp
	return "", nil
}

// Get returns a stored object, primarily for tests.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

var _ detection.ImageStore = (*MemoryStore)(nil)
