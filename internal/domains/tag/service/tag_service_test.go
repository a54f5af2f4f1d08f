package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindMany(ctx context.Context, q model.ListQuery) ([]model.Tag, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Tag), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*model.Tag)
	return tag, args.Error(1)
}

func (m *mockRepo) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	args := m.Called(ctx, slug)
	tag, _ := args.Get(0).(*model.Tag)
	return tag, args.Error(1)
}

func (m *mockRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, tag *model.Tag) (*model.Tag, error) {
	args := m.Called(ctx, tag)
	out, _ := args.Get(0).(*model.Tag)
	return out, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, patch model.TagPatch) (*model.Tag, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(*model.Tag)
	return out, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) UpdatePostCount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) UpdateMultiplePostCounts(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *mockRepo) ReconcileAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreate_GeneratesSlug(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	repo.On("ExistsBySlug", ctx, "next-js", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("ExistsByName", ctx, "Next.js", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(tag *model.Tag) bool {
		return tag.Name == "Next.js" && tag.Slug == "next-js" && tag.ID != uuid.Nil
	})).Return(&model.Tag{Name: "Next.js", Slug: "next-js"}, nil)

	tag, err := svc.Create(ctx, model.CreateTagRequest{Name: "  Next.js "})
	require.NoError(t, err)
	assert.Equal(t, "next-js", tag.Slug)
	assert.Equal(t, 0, tag.PostCount)
	repo.AssertExpectations(t)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTagService(repo, nil)
	ctx := context.Background()

	repo.On("ExistsBySlug", ctx, "go", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(ctx, model.CreateTagRequest{Name: "Go", Slug: "go"})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ValidationError(t *testing.T) {
	svc := NewTagService(new(mockRepo), nil)

	_, err := svc.Create(context.Background(), model.CreateTagRequest{Name: "", Slug: "Bad Slug"})
	ve, ok := validator.IsValidationError(err)
	require.True(t, ok)

	lookup := ve.Lookup()
	assert.Contains(t, lookup, "name")
	assert.Contains(t, lookup, "payload.slug")
}

func TestUpdate_ExcludesSelfFromUniqueness(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTagService(repo, nil)
	ctx := context.Background()
	id := utils.NewID()
	name := "Go"

	repo.On("ExistsByName", ctx, "Go", &id).Return(false, nil)
	repo.On("Update", ctx, id, model.TagPatch{Name: &name}).Return(&model.Tag{ID: id, Name: "Go"}, nil)

	tag, err := svc.Update(ctx, id, model.UpdateTagRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Go", tag.Name)
	repo.AssertNotCalled(t, "ExistsBySlug", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmptyPatchReturnsCurrent(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTagService(repo, nil)
	ctx := context.Background()
	id := utils.NewID()

	repo.On("FindByID", ctx, id).Return(&model.Tag{ID: id, Name: "Go"}, nil)

	tag, err := svc.Update(ctx, id, model.UpdateTagRequest{})
	require.NoError(t, err)
	assert.Equal(t, id, tag.ID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_ComputesMeta(t *testing.T) {
	repo := new(mockRepo)
	svc := NewTagService(repo, nil)
	ctx := context.Background()
	q := model.ListQuery{Page: 1, Limit: 10}

	repo.On("FindMany", ctx, q).Return([]model.Tag{{Name: "a"}}, int64(42), nil)

	tags, meta, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Equal(t, 5, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateDetails(context.Context) { c.calls++ }

func TestUpdate_RenameInvalidatesPostDetails(t *testing.T) {
	repo := new(mockRepo)
	posts := &countingInvalidator{}
	svc := NewTagService(repo, posts)
	ctx := context.Background()
	id := utils.NewID()
	name := "Golang"

	repo.On("ExistsByName", ctx, name, &id).Return(false, nil)
	repo.On("Update", ctx, id, model.TagPatch{Name: &name}).Return(&model.Tag{ID: id, Name: name}, nil)

	_, err := svc.Update(ctx, id, model.UpdateTagRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, posts.calls)
}

func TestDelete_InvalidatesPostDetails(t *testing.T) {
	repo := new(mockRepo)
	posts := &countingInvalidator{}
	svc := NewTagService(repo, posts)
	ctx := context.Background()
	id := utils.NewID()

	repo.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.Delete(ctx, id))
	assert.Equal(t, 1, posts.calls)
}
