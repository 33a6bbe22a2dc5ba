package postgres

import (
	"context"
	"database/sql"

	"conferencehub/internal/domain"
)

type ratingRepository struct {
	DB *sql.DB
}

func NewRatingRepository(db *sql.DB) domain.RatingRepository {
	return &ratingRepository{DB: db}
}

func (r *ratingRepository) Create(ctx context.Context, rt *domain.Rating) error {
	query := `
		INSERT INTO ratings (conference_id, profile_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rt.ConferenceID, rt.ProfileID, rt.Rating, rt.Comment, rt.CreatedAt).Scan(&rt.ID)
	switch {
	case isUniqueViolation(err):
		return domain.ErrAlreadyRated
	case isCheckViolation(err):
		return domain.ErrInvalidInput
	}
	return err
}

func (r *ratingRepository) ListByConference(ctx context.Context, conferenceID string) ([]*domain.RatingWithAuthor, error) {
	query := `
		SELECT r.id, r.conference_id, r.profile_id, r.rating, r.comment, r.created_at,
		       u.username, u.first_name, u.last_name
		FROM ratings r
		JOIN profiles p ON p.id = r.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE r.conference_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.RatingWithAuthor
	for rows.Next() {
		rt := &domain.Rating{}
		var username, firstName, lastName string
		if err := rows.Scan(&rt.ID, &rt.ConferenceID, &rt.ProfileID, &rt.Rating, &rt.Comment, &rt.CreatedAt,
			&username, &firstName, &lastName); err != nil {
			return nil, err
		}
		out = append(out, &domain.RatingWithAuthor{
			Rating:   rt,
			Username: username,
			FullName: domain.JoinName(firstName, lastName),
		})
	}
	return out, rows.Err()
}
