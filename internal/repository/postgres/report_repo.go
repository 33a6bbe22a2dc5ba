package postgres

import (
	"context"
	"database/sql"

	"conferencehub/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

func (r *reportRepository) UserRows(ctx context.Context) ([]domain.UserReportRow, error) {
	query := `
		SELECT u.username, u.first_name, u.last_name, u.email, p.user_type, p.phone,
		       c.name, c.governorate, p.is_approved, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN cities c ON c.id = p.city_id
		ORDER BY p.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserReportRow
	for rows.Next() {
		var row domain.UserReportRow
		var cityName, governorate sql.NullString
		if err := rows.Scan(&row.Username, &row.FirstName, &row.LastName, &row.Email, &row.Role, &row.Phone,
			&cityName, &governorate, &row.IsApproved, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.CityName = cityName.String
		row.Governorate = governorate.String
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *reportRepository) ConferenceRows(ctx context.Context) ([]domain.ConferenceReportRow, error) {
	query := `
		SELECT c.title, c.description, u.username, u.first_name, u.last_name, cat.name,
		       c.start_date, c.end_date, c.location, ci.name, c.status,
		       c.max_attendees, c.current_attendees, c.is_featured, c.created_at
		FROM conferences c
		JOIN profiles p ON p.id = c.organizer_id
		JOIN users u ON u.id = p.user_id
		LEFT JOIN categories cat ON cat.id = c.category_id
		LEFT JOIN cities ci ON ci.id = c.city_id
		ORDER BY c.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ConferenceReportRow
	for rows.Next() {
		var row domain.ConferenceReportRow
		var categoryName, cityName sql.NullString
		if err := rows.Scan(&row.Title, &row.Description, &row.OrganizerUsername, &row.OrganizerFirstName, &row.OrganizerLastName,
			&categoryName, &row.StartDate, &row.EndDate, &row.Location, &cityName, &row.Status,
			&row.MaxAttendees, &row.CurrentAttendees, &row.IsFeatured, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.CategoryName = categoryName.String
		row.CityName = cityName.String
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *reportRepository) RatingRows(ctx context.Context) ([]domain.RatingReportRow, error) {
	query := `
		SELECT c.title, u.username, u.first_name, u.last_name, r.rating, r.comment, r.created_at
		FROM ratings r
		JOIN conferences c ON c.id = r.conference_id
		JOIN profiles p ON p.id = r.profile_id
		JOIN users u ON u.id = p.user_id
		ORDER BY r.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RatingReportRow
	for rows.Next() {
		var row domain.RatingReportRow
		if err := rows.Scan(&row.ConferenceTitle, &row.Username, &row.FirstName, &row.LastName,
			&row.Rating, &row.Comment, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
