package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"conferencehub/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

// Register inserts the attendance and claims a seat. The seat update only
// succeeds while current_attendees is below max_attendees, so concurrent
// registrations cannot overbook.
func (r *attendanceRepository) Register(ctx context.Context, a *domain.Attendance) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			INSERT INTO attendances (conference_id, profile_id, attended, registered_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query, a.ConferenceID, a.ProfileID, a.Attended, a.RegisteredAt).Scan(&a.ID)
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE conferences
			SET current_attendees = current_attendees + 1, updated_at = $2
			WHERE id = $1 AND current_attendees < max_attendees
		`, a.ConferenceID, a.RegisteredAt)
		if err != nil {
			return err
		}
		if err := expectAffected(res); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrConferenceFull
			}
			return err
		}
		return nil
	})
}

func (r *attendanceRepository) MarkAttended(ctx context.Context, conferenceID, profileID string, at time.Time) (*domain.Attendance, error) {
	query := `
		UPDATE attendances
		SET attended = TRUE, attended_at = $3
		WHERE conference_id = $1 AND profile_id = $2
		RETURNING id, conference_id, profile_id, attended, registered_at, attended_at
	`
	a := &domain.Attendance{}
	var attendedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, conferenceID, profileID, at).
		Scan(&a.ID, &a.ConferenceID, &a.ProfileID, &a.Attended, &a.RegisteredAt, &attendedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.AttendedAt = timePtr(attendedAt)
	return a, nil
}
