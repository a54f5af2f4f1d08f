package service

import (
	"context"

	"github.com/google/uuid"

	categoryModel "blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/post/model"
	tagModel "blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/query"
)

type Service interface {
	// ListPublished serves the public site: published posts only.
	ListPublished(ctx context.Context, raw query.Raw) ([]model.Post, pagination.Meta, error)
	// ListAll serves the admin console: every post, optional published filter.
	ListAll(ctx context.Context, raw query.Raw) ([]model.Post, pagination.Meta, error)

	// GetPublishedBySlug returns a published post and records a view.
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	Create(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// IsSlugAvailable reports whether slug is free, ignoring excludeID.
	IsSlugAvailable(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// InvalidateDetails drops every cached post detail.
	InvalidateDetails(ctx context.Context)
}

// CategoryLookup is the part of the category repository posts depend on.
type CategoryLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*categoryModel.Category, error)
}

// TagLookup is the part of the tag repository posts depend on.
type TagLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]tagModel.Tag, error)
}

// PageSizeProvider supplies the configured posts per page.
type PageSizeProvider interface {
	PostsPerPage(ctx context.Context) int
}
