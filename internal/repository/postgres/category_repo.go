package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencehub/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.Name, c.Description, nullString(c.CreatedBy), c.CreatedAt).Scan(&c.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT id, name, description, created_by, created_at FROM categories WHERE id = $1`
	c, err := scanCategory(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, description, created_by, created_at FROM categories ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE categories SET name = $1, description = $2 WHERE id = $3`, c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes the category. Conferences referencing it keep existing with a null category.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanCategory(row scanner) (*domain.Category, error) {
	c := &domain.Category{}
	var createdBy sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &createdBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedBy = stringPtr(createdBy)
	return c, nil
}
