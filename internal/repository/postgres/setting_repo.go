package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"conferencehub/internal/domain"
)

type settingRepository struct {
	DB *sql.DB
}

func NewSettingRepository(db *sql.DB) domain.SettingRepository {
	return &settingRepository{DB: db}
}

func (r *settingRepository) ListByKeys(ctx context.Context, keys []domain.SettingKey) ([]*domain.SystemSetting, error) {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	query := `
		SELECT key, value, description, updated_at, updated_by
		FROM system_settings
		WHERE key = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SystemSetting
	for rows.Next() {
		s := &domain.SystemSetting{}
		var updatedBy sql.NullString
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt, &updatedBy); err != nil {
			return nil, err
		}
		s.UpdatedBy = stringPtr(updatedBy)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *settingRepository) UpsertAll(ctx context.Context, settings []*domain.SystemSetting) error {
	query := `
		INSERT INTO system_settings (key, value, description, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    description = EXCLUDED.description,
		    updated_at = EXCLUDED.updated_at,
		    updated_by = EXCLUDED.updated_by
	`
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		for _, s := range settings {
			if _, err := tx.ExecContext(ctx, query, s.Key, s.Value, s.Description, s.UpdatedAt, nullString(s.UpdatedBy)); err != nil {
				return err
			}
		}
		return nil
	})
}
