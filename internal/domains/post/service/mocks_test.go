package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	categoryModel "blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/post/model"
	tagModel "blog-backend/internal/domains/tag/model"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindMany(ctx context.Context, q model.ListQuery) ([]model.Post, int64, error) {
	args := m.Called(ctx, q)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, post model.NewPost) (*model.Post, error) {
	args := m.Called(ctx, post)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, patch model.PostPatch) (*model.Post, error) {
	args := m.Called(ctx, id, patch)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

// fakeCategories knows a fixed set of category ids.
type fakeCategories map[uuid.UUID]bool

func (f fakeCategories) FindByID(_ context.Context, id uuid.UUID) (*categoryModel.Category, error) {
	if f[id] {
		return &categoryModel.Category{ID: id}, nil
	}
	return nil, categoryModel.ErrCategoryNotFound
}

type fakeTags map[uuid.UUID]bool

func (f fakeTags) FindByIDs(_ context.Context, ids []uuid.UUID) ([]tagModel.Tag, error) {
	var out []tagModel.Tag
	for _, id := range ids {
		if f[id] {
			out = append(out, tagModel.Tag{ID: id})
		}
	}
	return out, nil
}

type fixedPageSize int

func (f fixedPageSize) PostsPerPage(context.Context) int { return int(f) }

// failingCache is a cache whose backend is unreachable.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Get(context.Context, string, interface{}) (bool, error) { return false, errCacheDown }
func (failingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errCacheDown
}
func (failingCache) Delete(context.Context, ...string) error { return errCacheDown }
func (failingCache) DeletePattern(context.Context, string) error { return errCacheDown }
func (failingCache) Ping(context.Context) error { return errCacheDown }
func (failingCache) Increment(context.Context, string) (int64, error) { return 0, errCacheDown }
func (failingCache) IncrementBy(context.Context, string, int64) (int64, error) {
	return 0, errCacheDown
}
func (failingCache) GetDelInt(context.Context, string) (int64, bool, error) {
	return 0, false, errCacheDown
}
func (failingCache) Keys(context.Context, string) ([]string, error) { return nil, errCacheDown }
