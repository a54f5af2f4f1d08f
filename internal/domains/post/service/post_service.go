package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	categoryModel "blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
	"blog-backend/internal/shared/markdown"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const (
	detailKeyPrefix = "post:slug:"
	defaultPageSize = 9
	maxSlugAttempts = 4
)

// Config carries the listing bounds and parsing mode. The default limits
// apply only when no page size provider answers.
type Config struct {
	Mode               query.Mode
	PublicDefaultLimit int
	PublicMaxLimit     int
	AdminDefaultLimit  int
	AdminMaxLimit      int
	DetailCacheTTL     time.Duration
}

type postService struct {
	repo       repository.Repository
	categories CategoryLookup
	tags       TagLookup
	pageSize   PageSizeProvider
	cache      cache.Cache
	views      *ViewCounter
	cfg        Config
}

func NewPostService(
	repo repository.Repository,
	categories CategoryLookup,
	tags TagLookup,
	pageSize PageSizeProvider,
	c cache.Cache,
	views *ViewCounter,
	cfg Config,
) Service {
	if cfg.DetailCacheTTL <= 0 {
		cfg.DetailCacheTTL = 5 * time.Minute
	}
	return &postService{
		repo:       repo,
		categories: categories,
		tags:       tags,
		pageSize:   pageSize,
		cache:      c,
		views:      views,
		cfg:        cfg,
	}
}

// ========== Listing ==========

func (s *postService) postsPerPage(ctx context.Context, fallback int) int {
	if s.pageSize != nil {
		if n := s.pageSize.PostsPerPage(ctx); n > 0 {
			return n
		}
	}
	if fallback > 0 {
		return fallback
	}
	return defaultPageSize
}

func (s *postService) ListPublished(ctx context.Context, raw query.Raw) ([]model.Post, pagination.Meta, error) {
	opts := model.PublicListOptions(s.postsPerPage(ctx, s.cfg.PublicDefaultLimit), s.cfg.PublicMaxLimit, s.cfg.Mode)
	return s.list(ctx, raw, opts)
}

func (s *postService) ListAll(ctx context.Context, raw query.Raw) ([]model.Post, pagination.Meta, error) {
	opts := model.AdminListOptions(s.postsPerPage(ctx, s.cfg.AdminDefaultLimit), s.cfg.AdminMaxLimit, s.cfg.Mode)
	return s.list(ctx, raw, opts)
}

func (s *postService) list(ctx context.Context, raw query.Raw, opts model.ListOptions) ([]model.Post, pagination.Meta, error) {
	q, err := model.NormalizeListQuery(raw, opts)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	posts, total, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.Compute(total, q.Page, q.Limit), nil
}

// ========== Detail ==========

func detailKey(slug string) string {
	return detailKeyPrefix + slug
}

func (s *postService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.cachedPublished(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.views != nil {
		if err := s.views.Record(ctx, post.ID); err != nil {
			logger.Warn("failed to record post view", map[string]interface{}{
				"post_id": post.ID.String(),
				"error":   err.Error(),
			})
		}
	}

	return post, nil
}

func (s *postService) cachedPublished(ctx context.Context, slug string) (*model.Post, error) {
	key := detailKey(slug)

	if s.cache != nil {
		var cached model.Post
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("post cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		} else if found {
			return &cached, nil
		}
	}

	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, model.ErrPostNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, post, s.cfg.DetailCacheTTL); err != nil {
			logger.Warn("post cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return post, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// ========== Writes ==========

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	if authorID == uuid.Nil {
		return nil, model.ErrInvalidAuthor
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	tagIDs := model.ParseIDs(req.TagIDs)

	if err := s.checkReferences(ctx, &categoryID, tagIDs); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		generated, err := s.freeGeneratedSlug(ctx, utils.SlugOrFallback(req.Title, "post"))
		if err != nil {
			return nil, err
		}
		slug = generated
	} else if err := s.ensureSlugFree(ctx, slug, nil); err != nil {
		return nil, err
	}

	excerpt := req.Excerpt
	if excerpt == nil {
		if derived := markdown.Excerpt(req.Content, model.MaxExcerptLength); derived != "" {
			excerpt = &derived
		}
	}

	post, err := s.repo.Create(ctx, model.NewPost{
		ID:         utils.NewID(),
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		Excerpt:    excerpt,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		CategoryID: categoryID,
		AuthorID:   authorID,
		TagIDs:     tagIDs,
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateDetails(ctx)
	logger.Info("post created", map[string]interface{}{
		"post_id":   post.ID.String(),
		"slug":      post.Slug,
		"published": post.Published,
	})
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	patch := model.PostPatch{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	if req.CategoryID != nil {
		categoryID, _ := uuid.Parse(*req.CategoryID)
		patch.CategoryID = &categoryID
	}
	if req.TagIDs != nil {
		tagIDs := model.ParseIDs(*req.TagIDs)
		patch.TagIDs = &tagIDs
	}

	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	var tagIDs []uuid.UUID
	if patch.TagIDs != nil {
		tagIDs = *patch.TagIDs
	}
	if err := s.checkReferences(ctx, patch.CategoryID, tagIDs); err != nil {
		return nil, err
	}

	if patch.Slug != nil {
		if err := s.ensureSlugFree(ctx, *patch.Slug, &id); err != nil {
			return nil, err
		}
	}

	post, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.InvalidateDetails(ctx)
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.InvalidateDetails(ctx)
	logger.Info("post deleted", map[string]interface{}{"post_id": id.String()})
	return nil
}

func (s *postService) IsSlugAvailable(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	if !utils.IsValidSlug(slug) {
		return false, validator.NewError("Invalid query parameters", validator.Node{
			Property: "query",
			Children: []validator.Node{{
				Property:    "slug",
				Constraints: map[string]string{"matches": "slug must be lowercase letters, digits and single hyphens"},
				Value:       slug,
			}},
		})
	}

	taken, err := s.repo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// ========== Helpers ==========

func (s *postService) ensureSlugFree(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	taken, err := s.repo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return model.NewDuplicateSlug(slug)
	}
	return nil
}

// freeGeneratedSlug returns base, or base with a random suffix when base is
// already taken. Only slugs derived from the title get a suffix; a slug the
// author typed is reported as a duplicate instead.
func (s *postService) freeGeneratedSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		taken, err := s.repo.ExistsBySlug(ctx, candidate, nil)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = utils.WithRandomSuffix(base)
	}
	return "", model.NewDuplicateSlug(base)
}

// checkReferences reports unknown category or tag ids as field errors.
func (s *postService) checkReferences(ctx context.Context, categoryID *uuid.UUID, tagIDs []uuid.UUID) error {
	var nodes []validator.Node

	if categoryID != nil {
		_, err := s.categories.FindByID(ctx, *categoryID)
		switch {
		case errors.Is(err, categoryModel.ErrCategoryNotFound):
			nodes = append(nodes, validator.Node{
				Property:    "categoryId",
				Constraints: map[string]string{"exists": "category does not exist"},
				Value:       categoryID.String(),
			})
		case err != nil:
			return err
		}
	}

	if len(tagIDs) > 0 {
		found, err := s.tags.FindByIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if len(found) != len(tagIDs) {
			known := make(map[uuid.UUID]struct{}, len(found))
			for _, t := range found {
				known[t.ID] = struct{}{}
			}
			var missing []string
			for _, id := range tagIDs {
				if _, ok := known[id]; !ok {
					missing = append(missing, id.String())
				}
			}
			nodes = append(nodes, validator.Node{
				Property:    "tagIds",
				Constraints: map[string]string{"exists": "some tags do not exist"},
				Value:       missing,
			})
		}
	}

	if len(nodes) == 0 {
		return nil
	}
	return validator.NewError("Validation failed", validator.Node{Property: "payload", Children: nodes})
}

// invalidate drops cached post details after any write.
func (s *postService) InvalidateDetails(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, detailKeyPrefix+"*"); err != nil {
		logger.Warn("post cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
