package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

const maxCategoryNameLen = 100

type categoryService struct {
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewCategoryService(categoryRepo domain.CategoryRepository, timeout time.Duration) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo, contextTimeout: timeout, now: time.Now}
}

func (s *categoryService) List(ctx context.Context, actor *domain.Profile) ([]*domain.Category, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, actor *domain.Profile, name, description string) (*domain.Category, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	createdBy := actor.UserID
	c := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   &createdBy,
		CreatedAt:   s.now(),
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, actor *domain.Profile, id, name, description string) (*domain.Category, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, actor *domain.Profile, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func categoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxCategoryNameLen {
		return "", fmt.Errorf("%w: category name must be between 1 and %d characters", domain.ErrInvalidInput, maxCategoryNameLen)
	}
	return name, nil
}
