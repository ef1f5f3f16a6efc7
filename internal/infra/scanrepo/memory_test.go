package scanrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cropsense/leafscan/internal/domain/detection"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		_, err := repo.Insert(ctx, detection.Scan{
			ID:        id,
			UserID:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, detection.Scan{ID: "other", UserID: "user-2", CreatedAt: base})
	require.NoError(t, err)

	scans, err := repo.ListByUser(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	require.Equal(t, "new", scans[0].ID)
	require.Equal(t, "mid", scans[1].ID)

	scans, err = repo.ListByUser(ctx, "nobody", 10)
	require.NoError(t, err)
	require.Empty(t, scans)
}
