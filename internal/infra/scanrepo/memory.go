package scanrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/cropsense/leafscan/internal/domain/detection"
)

// MemoryRepository keeps scans in process memory. It backs the service when
// no database is configured so detection keeps working without persistence
// guarantees.
type MemoryRepository struct {
	mu    sync.RWMutex
	scans []detection.Scan
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert stores one scan and returns its id.
func (r *MemoryRepository) Insert(_ context.Context, scan detection.Scan) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scans = append(r.scans, scan)
	return scan.ID, nil
}

// ListByUser returns a user's scans, newest first.
func (r *MemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]detection.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]detection.Scan, 0)
	for _, scan := range r.scans {
		if scan.UserID == userID {
			matches = append(matches, scan)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

var _ detection.ScanRepository = (*MemoryRepository)(nil)
