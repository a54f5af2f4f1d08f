package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/setting/model"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/cache"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetAll(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	values, _ := args.Get(0).(map[string]string)
	return values, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, values map[string]string) error {
	return m.Called(ctx, values).Error(0)
}

var defaults = model.Settings{
	SiteTitle:       "Blog",
	SiteDescription: "Notes",
	SiteURL:         "http://localhost:3000",
	PostsPerPage:    9,
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestGet_DefaultsAndCache(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetAll", mock.Anything).Return(map[string]string{"siteTitle": "Dev"}, nil).Once()
	svc := NewSettingService(repo, cache.NewMemory(), defaults)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dev", got.SiteTitle)
	assert.Equal(t, 9, got.PostsPerPage)

	// second read is served from the cache
	got, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dev", got.SiteTitle)
	repo.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestUpdate_PartialMergeInvalidatesCache(t *testing.T) {
	repo := new(mockRepo)
	c := cache.NewMemory()
	svc := NewSettingService(repo, c, defaults)
	ctx := context.Background()

	repo.On("GetAll", mock.Anything).Return(map[string]string{"siteTitle": "Dev"}, nil).Once()
	_, err := svc.Get(ctx)
	require.NoError(t, err)

	repo.On("Upsert", mock.Anything, map[string]string{"postsPerPage": "12"}).Return(nil).Once()
	repo.On("GetAll", mock.Anything).Return(map[string]string{"siteTitle": "Dev", "postsPerPage": "12"}, nil).Once()

	got, err := svc.Update(ctx, model.UpdateSettingsRequest{PostsPerPage: intPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, "Dev", got.SiteTitle)
	assert.Equal(t, 12, got.PostsPerPage)
	repo.AssertExpectations(t)
}

func TestUpdate_ValidationError(t *testing.T) {
	repo := new(mockRepo)
	svc := NewSettingService(repo, nil, defaults)

	_, err := svc.Update(context.Background(), model.UpdateSettingsRequest{
		SiteURL:      strPtr("mailto:me@example.com"),
		PostsPerPage: intPtr(4),
	})

	ve, ok := validator.IsValidationError(err)
	require.True(t, ok)
	lookup := ve.Lookup()
	assert.Contains(t, lookup, "siteUrl")
	assert.Contains(t, lookup, "payload.siteUrl")
	assert.Contains(t, lookup, "postsPerPage")
	assert.Contains(t, lookup, "payload.postsPerPage")
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdate_EmptyIsRead(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetAll", mock.Anything).Return(map[string]string{}, nil)
	svc := NewSettingService(repo, nil, defaults)

	got, err := svc.Update(context.Background(), model.UpdateSettingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, defaults, *got)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPostsPerPage_FallsBackOnError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("db down"))
	svc := NewSettingService(repo, nil, defaults)

	assert.Equal(t, 9, svc.PostsPerPage(context.Background()))
}
