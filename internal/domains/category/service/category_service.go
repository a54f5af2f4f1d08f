package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/category/repository"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

type Service interface {
	List(ctx context.Context, q model.ListQuery) ([]model.Category, pagination.Meta, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostCacheInvalidator drops cached post details, which embed category summaries.
type PostCacheInvalidator interface {
	InvalidateDetails(ctx context.Context)
}

type categoryService struct {
	repo  repository.Repository
	posts PostCacheInvalidator
}

// NewCategoryService builds the service; posts may be nil.
func NewCategoryService(repo repository.Repository, posts PostCacheInvalidator) Service {
	return &categoryService{repo: repo, posts: posts}
}

func (s *categoryService) List(ctx context.Context, q model.ListQuery) ([]model.Category, pagination.Meta, error) {
	categories, total, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return categories, pagination.Compute(total, q.Page, q.Limit), nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	if req.Slug == "" {
		req.Slug = utils.SlugOrFallback(req.Name, "category")
	}

	if err := s.checkConflicts(ctx, &req.Name, &req.Slug, nil); err != nil {
		return nil, err
	}

	category, err := s.repo.Create(ctx, &model.Category{
		ID:          utils.NewID(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": category.ID.String(),
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.Category, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	if err := s.checkConflicts(ctx, patch.Name, patch.Slug, &id); err != nil {
		return nil, err
	}

	category, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidatePosts(ctx)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePosts(ctx)
	logger.Info("category deleted", map[string]interface{}{"category_id": id.String()})
	return nil
}

func (s *categoryService) invalidatePosts(ctx context.Context) {
	if s.posts != nil {
		s.posts.InvalidateDetails(ctx)
	}
}

func (s *categoryService) checkConflicts(ctx context.Context, name, slug *string, excludeID *uuid.UUID) error {
	if slug != nil {
		exists, err := s.repo.ExistsBySlug(ctx, *slug, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return model.NewDuplicateSlug(*slug)
		}
	}

	if name != nil {
		exists, err := s.repo.ExistsByName(ctx, *name, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return model.NewDuplicateName(*name)
		}
	}

	return nil
}
