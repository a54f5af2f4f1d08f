package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
)

type Repository interface {
	FindMany(ctx context.Context, q model.ListQuery) ([]model.Post, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)

	// Create, Update and Delete change the post, its post_tags rows and the
	// post_count of every affected tag and category in one transaction.
	Create(ctx context.Context, post model.NewPost) (*model.Post, error)
	Update(ctx context.Context, id uuid.UUID, patch model.PostPatch) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error
}
