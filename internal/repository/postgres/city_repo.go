package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"conferencehub/internal/domain"
)

type cityRepository struct {
	DB *sql.DB
}

func NewCityRepository(db *sql.DB) domain.CityRepository {
	return &cityRepository{DB: db}
}

func (r *cityRepository) List(ctx context.Context) ([]*domain.City, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, governorate FROM cities ORDER BY governorate, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.City
	for rows.Next() {
		c := &domain.City{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Governorate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns ErrNotFound for ids that are not UUIDs; no row can match them.
func (r *cityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c := &domain.City{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, governorate FROM cities WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Governorate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
