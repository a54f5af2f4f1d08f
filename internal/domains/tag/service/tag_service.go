package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/domains/tag/repository"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/logger"
)

// PostCacheInvalidator drops cached post details, which embed tag summaries.
type PostCacheInvalidator interface {
	InvalidateDetails(ctx context.Context)
}

type tagService struct {
	repo  repository.Repository
	posts PostCacheInvalidator
}

// NewTagService builds the service; posts may be nil.
func NewTagService(repo repository.Repository, posts PostCacheInvalidator) Service {
	return &tagService{repo: repo, posts: posts}
}

func (s *tagService) List(ctx context.Context, q model.ListQuery) ([]model.Tag, pagination.Meta, error) {
	tags, total, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return tags, pagination.Compute(total, q.Page, q.Limit), nil
}

func (s *tagService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *tagService) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *tagService) Create(ctx context.Context, req model.CreateTagRequest) (*model.Tag, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.SlugOrFallback(req.Name, "tag")
	}

	if err := s.ensureUnique(ctx, &req.Name, &slug, nil); err != nil {
		return nil, err
	}

	tag, err := s.repo.Create(ctx, &model.Tag{
		ID:   utils.NewID(),
		Name: req.Name,
		Slug: slug,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("tag created", map[string]interface{}{"tag_id": tag.ID.String(), "slug": tag.Slug})
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, id uuid.UUID, req model.UpdateTagRequest) (*model.Tag, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	if err := s.ensureUnique(ctx, patch.Name, patch.Slug, &id); err != nil {
		return nil, err
	}

	tag, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidatePosts(ctx)
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePosts(ctx)
	logger.Info("tag deleted", map[string]interface{}{"tag_id": id.String()})
	return nil
}

func (s *tagService) invalidatePosts(ctx context.Context) {
	if s.posts != nil {
		s.posts.InvalidateDetails(ctx)
	}
}

// ensureUnique runs the explicit uniqueness pre-checks; nil values are skipped.
func (s *tagService) ensureUnique(ctx context.Context, name, slug *string, excludeID *uuid.UUID) error {
	if slug != nil {
		taken, err := s.repo.ExistsBySlug(ctx, *slug, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return model.NewDuplicateSlug(*slug)
		}
	}
	if name != nil {
		taken, err := s.repo.ExistsByName(ctx, *name, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return model.NewDuplicateName(*name)
		}
	}
	return nil
}
