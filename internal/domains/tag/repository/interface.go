package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/tag/model"
)

// Repository is the persistence contract of the tag domain.
type Repository interface {
	FindMany(ctx context.Context, q model.ListQuery) ([]model.Tag, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*model.Tag, error)
	// FindByIDs returns the tags that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error)

	Create(ctx context.Context, tag *model.Tag) (*model.Tag, error)
	Update(ctx context.Context, id uuid.UUID, patch model.TagPatch) (*model.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// excludeID skips the row being updated.
	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	UpdatePostCount(ctx context.Context, id uuid.UUID) error
	UpdateMultiplePostCounts(ctx context.Context, ids []uuid.UUID) error
	// ReconcileAll recomputes post_count for every tag and returns how many rows changed.
	ReconcileAll(ctx context.Context) (int64, error)
}
