package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/category/model"
)

type Repository interface {
	FindMany(ctx context.Context, q model.ListQuery) ([]model.Category, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)

	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (*model.Category, error)
	// Delete fails with ErrCategoryHasPosts while posts still reference the category.
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	UpdatePostCount(ctx context.Context, id uuid.UUID) error
	ReconcileAll(ctx context.Context) (int64, error)
}
