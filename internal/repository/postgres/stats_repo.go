package postgres

import (
	"context"
	"database/sql"
	"time"

	"conferencehub/internal/domain"
)

type statsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &statsRepository{DB: db}
}

func (r *statsRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *statsRepository) CountProfiles(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profiles`)
}

func (r *statsRepository) CountProfilesSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profiles WHERE created_at >= $1`, since)
}

func (r *statsRepository) CountConferences(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM conferences`)
}

func (r *statsRepository) CountRatings(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM ratings`)
}

func (r *statsRepository) CountPendingRequests(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM conference_requests WHERE status = 'pending'`)
}

func (r *statsRepository) CountAttendance(ctx context.Context) (registered, attended int, err error) {
	err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE attended) FROM attendances`).
		Scan(&registered, &attended)
	return registered, attended, err
}

func (r *statsRepository) ConferencesByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM conferences GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StatusCount
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		sc.Label = sc.Status.Label()
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *statsRepository) ProfilesByRole(ctx context.Context) ([]domain.RoleCount, error) {
	query := `
		SELECT user_type, COUNT(*), COUNT(*) FILTER (WHERE is_approved)
		FROM profiles
		GROUP BY user_type
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoleCount
	for rows.Next() {
		var rc domain.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count, &rc.Approved); err != nil {
			return nil, err
		}
		rc.Label = rc.Role.Label()
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *statsRepository) ConferencesByMonth(ctx context.Context, year int) ([]domain.MonthlyCount, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*)
		FROM conferences
		WHERE EXTRACT(YEAR FROM created_at) = $1
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.DB.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthlyCount
	for rows.Next() {
		var mc domain.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

func (r *statsRepository) RecentConferences(ctx context.Context, limit int) ([]*domain.Conference, error) {
	return queryConferences(ctx, r.DB, `SELECT `+conferenceColumns+` FROM conferences ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *statsRepository) RecentProfiles(ctx context.Context, limit int) ([]*domain.ProfileWithUser, error) {
	return queryProfilesWithUsers(ctx, r.DB, profileWithUserSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit)
}
