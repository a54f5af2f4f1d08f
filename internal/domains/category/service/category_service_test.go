package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindMany(ctx context.Context, q model.ListQuery) ([]model.Category, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, category)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (*model.Category, error) {
	args := m.Called(ctx, id, patch)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdatePostCount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ReconcileAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	color := "#0af"

	t.Run("success with generated slug", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCategoryService(repo, nil)

		repo.On("ExistsBySlug", ctx, "frontend-dev", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("ExistsByName", ctx, "Frontend Dev", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(c *model.Category) bool {
			return c.Slug == "frontend-dev" && c.Color != nil && *c.Color == "#0af" && c.Description == nil
		})).Return(&model.Category{Name: "Frontend Dev", Slug: "frontend-dev"}, nil)

		got, err := svc.Create(ctx, model.CreateCategoryRequest{
			Name:        "Frontend Dev",
			Description: utils.StringPtr("   "),
			Color:       &color,
		})
		require.NoError(t, err)
		assert.Equal(t, "frontend-dev", got.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewCategoryService(repo, nil)

		repo.On("ExistsBySlug", ctx, "backend", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("ExistsByName", ctx, "Backend", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "Backend"})
		assert.ErrorIs(t, err, model.ErrDuplicateName)
	})

	t.Run("invalid color", func(t *testing.T) {
		svc := NewCategoryService(new(MockRepository), nil)
		bad := "red"

		_, err := svc.Create(ctx, model.CreateCategoryRequest{Name: "Backend", Color: &bad})
		ve, ok := validator.IsValidationError(err)
		require.True(t, ok)
		require.Len(t, ve.Fields, 1)
		assert.Equal(t, "payload.color", ve.Fields[0].Field)
		assert.Equal(t, "red", ve.Fields[0].Value)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewCategoryService(repo, nil)
	id := utils.NewID()

	repo.On("Delete", ctx, id).Return(model.ErrCategoryHasPosts)

	assert.ErrorIs(t, svc.Delete(ctx, id), model.ErrCategoryHasPosts)
}

func TestCategoryService_UpdateClearsDescription(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewCategoryService(repo, nil)
	id := utils.NewID()
	empty := ""

	repo.On("Update", ctx, id, model.CategoryPatch{Description: &empty}).
		Return(&model.Category{ID: id}, nil)

	_, err := svc.Update(ctx, id, model.UpdateCategoryRequest{Description: utils.StringPtr("  ")})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateDetails(context.Context) { c.calls++ }

func TestCategoryService_RenameInvalidatesPostDetails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	posts := &countingInvalidator{}
	svc := NewCategoryService(repo, posts)
	id := utils.NewID()
	name := "Backend"

	repo.On("ExistsByName", ctx, name, &id).Return(false, nil)
	repo.On("Update", ctx, id, model.CategoryPatch{Name: &name}).Return(&model.Category{ID: id, Name: name}, nil)

	_, err := svc.Update(ctx, id, model.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, posts.calls)
}

func TestCategoryService_FailedUpdateKeepsPostDetails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	posts := &countingInvalidator{}
	svc := NewCategoryService(repo, posts)
	id := utils.NewID()
	name := "Backend"

	repo.On("ExistsByName", ctx, name, &id).Return(true, nil)

	_, err := svc.Update(ctx, id, model.UpdateCategoryRequest{Name: &name})
	require.Error(t, err)
	assert.Zero(t, posts.calls)
}
