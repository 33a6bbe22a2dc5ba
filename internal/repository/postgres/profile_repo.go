package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencehub/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

const profileColumns = `id, user_id, user_type, phone, address, city_id, bio, profile_picture, is_approved, created_at`

// profileWithUserSelect joins a profile with its account and optional city.
const profileWithUserSelect = `
	SELECT p.id, p.user_id, p.user_type, p.phone, p.address, p.city_id, p.bio, p.profile_picture, p.is_approved, p.created_at,
	       u.id, u.username, u.email, u.first_name, u.last_name, u.created_at, u.updated_at,
	       c.id, c.name, c.governorate
	FROM profiles p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN cities c ON c.id = p.city_id
`

// Create inserts the profile. When a concurrent request already created the
// user's profile, the existing row is loaded into p instead.
func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, user_type, phone, address, city_id, bio, profile_picture, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.UserID, p.Role, p.Phone, p.Address, nullString(p.CityID), p.Bio, p.ProfilePicture, p.IsApproved, p.CreatedAt,
	).Scan(&p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetByUserID(ctx, p.UserID)
		if getErr != nil {
			return getErr
		}
		*p = *existing
		return nil
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) UpdateWithUser(ctx context.Context, u *domain.User, p *domain.Profile) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE users
			SET first_name = $1, last_name = $2, email = $3, updated_at = $4
			WHERE id = $5
		`, u.FirstName, u.LastName, u.Email, u.UpdatedAt, u.ID)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if err := expectAffected(res); err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx, `
			UPDATE profiles
			SET phone = $1, address = $2, city_id = $3, bio = $4
			WHERE id = $5
		`, p.Phone, p.Address, nullString(p.CityID), p.Bio, p.ID)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return expectAffected(res)
	})
}

func (r *profileRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE profiles SET is_approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *profileRepository) ListWithUsers(ctx context.Context) ([]*domain.ProfileWithUser, error) {
	return queryProfilesWithUsers(ctx, r.DB, profileWithUserSelect+` ORDER BY p.created_at DESC`)
}

func scanProfile(row scanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var cityID sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.Role, &p.Phone, &p.Address, &cityID, &p.Bio, &p.ProfilePicture, &p.IsApproved, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CityID = stringPtr(cityID)
	return p, nil
}

func queryProfilesWithUsers(ctx context.Context, db *sql.DB, query string, args ...any) ([]*domain.ProfileWithUser, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ProfileWithUser
	for rows.Next() {
		p := &domain.Profile{}
		u := &domain.User{}
		var cityID, cID, cName, cGov sql.NullString
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Role, &p.Phone, &p.Address, &cityID, &p.Bio, &p.ProfilePicture, &p.IsApproved, &p.CreatedAt,
			&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
			&cID, &cName, &cGov,
		); err != nil {
			return nil, err
		}
		p.CityID = stringPtr(cityID)
		item := &domain.ProfileWithUser{Profile: p, User: u}
		if cID.Valid {
			item.City = &domain.City{ID: cID.String, Name: cName.String, Governorate: cGov.String}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
