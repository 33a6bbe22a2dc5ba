package domain

import (
	"context"
	"time"
)

// Category groups conferences by topic.
// swagger:model Category
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryRepository defines storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// List returns every category, newest first.
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryService is the admin category manager.
type CategoryService interface {
	List(ctx context.Context, actor *Profile) ([]*Category, error)
	Create(ctx context.Context, actor *Profile, name, description string) (*Category, error)
	Update(ctx context.Context, actor *Profile, id, name, description string) (*Category, error)
	Delete(ctx context.Context, actor *Profile, id string) error
}
