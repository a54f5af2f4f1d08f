package service

import (
	"context"
	"time"

	"blog-backend/internal/domains/setting/model"
	"blog-backend/internal/domains/setting/repository"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const (
	cacheKey = "settings:all"
	cacheTTL = 10 * time.Minute
)

type Service interface {
	Get(ctx context.Context) (*model.Settings, error)
	// Update merges the submitted fields into the store and returns the result.
	Update(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error)
	// PostsPerPage never fails: store errors fall back to the default.
	PostsPerPage(ctx context.Context) int
}

type settingService struct {
	repo     repository.Repository
	cache    cache.Cache
	defaults model.Settings
}

// NewSettingService builds the service; c may be nil to disable caching.
func NewSettingService(repo repository.Repository, c cache.Cache, defaults model.Settings) Service {
	return &settingService{repo: repo, cache: c, defaults: defaults}
}

func (s *settingService) Get(ctx context.Context) (*model.Settings, error) {
	if s.cache != nil {
		var cached model.Settings
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("settings cache read failed", map[string]interface{}{"error": err.Error()})
		} else if found {
			return &cached, nil
		}
	}

	values, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	settings := model.FromValues(values, s.defaults)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, settings, cacheTTL); err != nil {
			logger.Warn("settings cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return &settings, nil
}

func (s *settingService) Update(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validator.NewError("Validation failed", validator.FromOzzo("payload", err, req.Values()))
	}

	values := req.ToStorage()
	if len(values) == 0 {
		return s.Get(ctx)
	}

	if err := s.repo.Upsert(ctx, values); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	logger.Info("settings updated", map[string]interface{}{"keys": keys})

	return s.Get(ctx)
}

func (s *settingService) PostsPerPage(ctx context.Context) int {
	settings, err := s.Get(ctx)
	if err != nil {
		logger.Warn("settings unavailable, using default page size", map[string]interface{}{"error": err.Error()})
		return s.defaults.PostsPerPage
	}
	return settings.PostsPerPage
}

func (s *settingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("settings cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
