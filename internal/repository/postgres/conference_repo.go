package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"conferencehub/internal/domain"
)

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{DB: db}
}

const conferenceColumns = `id, title, description, category_id, organizer_id, start_date, end_date, location, city_id,
	max_attendees, current_attendees, status, is_featured, created_at, updated_at`

// CreateWithRequest inserts c and req in one transaction; req.ConferenceID is set from the new row.
func (r *conferenceRepository) CreateWithRequest(ctx context.Context, c *domain.Conference, req *domain.ConferenceRequest) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			INSERT INTO conferences (title, description, category_id, organizer_id, start_date, end_date, location, city_id,
				max_attendees, current_attendees, status, is_featured, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			c.Title, c.Description, nullString(c.CategoryID), c.OrganizerID, c.StartDate, c.EndDate, c.Location,
			nullString(c.CityID), c.MaxAttendees, c.CurrentAttendees, c.Status, c.IsFeatured, c.CreatedAt, c.UpdatedAt,
		).Scan(&c.ID); err != nil {
			return err
		}
		req.ConferenceID = c.ID
		return insertRequest(ctx, tx, req)
	})
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c, err := scanConference(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *conferenceRepository) List(ctx context.Context) ([]*domain.Conference, error) {
	return queryConferences(ctx, r.DB, `SELECT `+conferenceColumns+` FROM conferences ORDER BY created_at DESC`)
}

func (r *conferenceRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE status IN ('approved', 'active') AND start_date >= $1
		ORDER BY start_date ASC
		LIMIT $2
	`
	return queryConferences(ctx, r.DB, query, from, limit)
}

func queryConferences(ctx context.Context, db *sql.DB, query string, args ...any) ([]*domain.Conference, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Conference
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanConference(row scanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var categoryID, cityID sql.NullString
	if err := row.Scan(
		&c.ID, &c.Title, &c.Description, &categoryID, &c.OrganizerID, &c.StartDate, &c.EndDate, &c.Location, &cityID,
		&c.MaxAttendees, &c.CurrentAttendees, &c.Status, &c.IsFeatured, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.CategoryID = stringPtr(categoryID)
	c.CityID = stringPtr(cityID)
	return c, nil
}
