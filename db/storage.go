package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/satheeshds/buildledger/models"
)

// ReserveStorage adds bytes to the tenant's usage in one conditional upsert that
// affects no row when the result would pass limit.
func (s *Store) ReserveStorage(ctx context.Context, tenantID string, bytes, limit int64) error {
	if bytes > limit {
		return models.ErrQuotaExceeded
	}
	tag, err := s.q.Exec(ctx,
		`INSERT INTO storage_usage (tenant_id, used_bytes) VALUES ($1, $2)
		ON CONFLICT (tenant_id) DO UPDATE
			SET used_bytes = storage_usage.used_bytes + EXCLUDED.used_bytes, updated_at = now()
			WHERE storage_usage.used_bytes + EXCLUDED.used_bytes <= $3`,
		tenantID, bytes, limit)
	if err != nil {
		return mapError("reserving storage", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrQuotaExceeded
	}
	return nil
}

func (s *Store) ReleaseStorage(ctx context.Context, tenantID string, bytes int64) error {
	_, err := s.q.Exec(ctx,
		"UPDATE storage_usage SET used_bytes = GREATEST(used_bytes - $1, 0), updated_at = now() WHERE tenant_id = $2",
		bytes, tenantID)
	if err != nil {
		return mapError("releasing storage", err)
	}
	return nil
}

func (s *Store) StorageUsed(ctx context.Context, tenantID string) (int64, error) {
	var used int64
	err := s.q.QueryRow(ctx, "SELECT used_bytes FROM storage_usage WHERE tenant_id = $1", tenantID).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, mapError("reading storage usage", err)
	}
	return used, nil
}
