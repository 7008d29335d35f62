package service

import (
	"context"
	"strings"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns the categories in insertion order
func (s *CategoryService) ListCategories(ctx context.Context) ([]string, error) {
	return s.categoryRepo.List(ctx)
}

// ListCategoryCounts returns each category with its item count
func (s *CategoryService) ListCategoryCounts(ctx context.Context) ([]entity.CategoryCount, error) {
	return s.categoryRepo.Counts(ctx)
}

// AddCategory inserts a category unless it already exists. Adding an existing
// name is not an error; created reports whether anything was inserted.
// Names are addressed as a single URL path segment, so "/" is rejected.
func (s *CategoryService) AddCategory(ctx context.Context, name string) (string, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, apperror.NewFieldError("name", "Category name is required")
	}
	if strings.Contains(name, "/") {
		return "", false, apperror.NewFieldError("name", "Category name must not contain '/'")
	}

	created, err := s.categoryRepo.Add(ctx, name)
	if err != nil {
		return "", false, err
	}
	return name, created, nil
}

// RemoveCategoryResult reports the effect of a category removal
type RemoveCategoryResult struct {
	Name         string `json:"name"`
	Removed      bool   `json:"removed"`
	ItemsCleared int    `json:"items_cleared"`
}

// RemoveCategory deletes a category and blanks it on every item that used it.
// Removing an unknown category is a no-op.
func (s *CategoryService) RemoveCategory(ctx context.Context, name string) (*RemoveCategoryResult, error) {
	removed, cleared, err := s.categoryRepo.Remove(ctx, name)
	if err != nil {
		return nil, err
	}
	return &RemoveCategoryResult{Name: name, Removed: removed, ItemsCleared: cleared}, nil
}
