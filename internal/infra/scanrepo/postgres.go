package scanrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cropsense/leafscan/internal/domain/detection"
)

// PostgresRepository implements detection.ScanRepository using pgx against
// the Supabase-hosted scans table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one scan and returns its id.
func (r *PostgresRepository) Insert(ctx context.Context, scan detection.Scan) (string, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO scans (id, user_id, image_url, crop_type, disease_detected, confidence, severity, recommendations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, scan.ID, scan.UserID, scan.ImageURL, scan.CropType, scan.DiseaseDetected,
		scan.Confidence, scan.Severity, scan.Recommendations, scan.CreatedAt)

	var id string
	if err := row.Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser returns a user's scans, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]detection.Scan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, image_url, crop_type, disease_detected, confidence, severity, recommendations, created_at
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := make([]detection.Scan, 0)
	for rows.Next() {
		var scan detection.Scan
		if err := rows.Scan(&scan.ID, &scan.UserID, &scan.ImageURL, &scan.CropType,
			&scan.DiseaseDetected, &scan.Confidence, &scan.Severity,
			&scan.Recommendations, &scan.CreatedAt); err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

var _ detection.ScanRepository = (*PostgresRepository)(nil)
