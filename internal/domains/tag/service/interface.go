package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/pagination"
)

type Service interface {
	List(ctx context.Context, q model.ListQuery) ([]model.Tag, pagination.Meta, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*model.Tag, error)
	Create(ctx context.Context, req model.CreateTagRequest) (*model.Tag, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateTagRequest) (*model.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
