package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/cache"
)

type fixture struct {
	repo     *MockRepository
	cache    *cache.Memory
	svc      Service
	category uuid.UUID
	tag      uuid.UUID
	author   uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(MockRepository),
		cache:    cache.NewMemory(),
		category: utils.NewID(),
		tag:      utils.NewID(),
		author:   utils.NewID(),
	}
	f.svc = NewPostService(
		f.repo,
		fakeCategories{f.category: true},
		fakeTags{f.tag: true},
		fixedPageSize(9),
		f.cache,
		NewViewCounter(f.cache, f.repo),
		Config{Mode: query.Lenient, PublicMaxLimit: 30, AdminMaxLimit: 100},
	)
	return f
}

func TestListPublished_UsesSettingsPageSize(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	published := true
	want := model.ListQuery{Page: 1, Limit: 9, Published: &published, Sort: model.SortPublishedAt, Order: query.Desc}
	posts := make([]model.Post, 9)
	f.repo.On("FindMany", ctx, want).Return(posts, int64(9), nil)

	got, meta, err := f.svc.ListPublished(ctx, query.Raw{"published": "false"})
	require.NoError(t, err)
	assert.Len(t, got, 9)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestListPublished_ClampsLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("FindMany", ctx, mock.MatchedBy(func(q model.ListQuery) bool {
		return q.Limit == 30 && q.CategorySlug != nil && *q.CategorySlug == "go"
	})).Return([]model.Post{}, int64(0), nil)

	_, meta, err := f.svc.ListPublished(ctx, query.Raw{"limit": "500", "category": "go"})
	require.NoError(t, err)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestListAll_AdminDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("FindMany", ctx, mock.MatchedBy(func(q model.ListQuery) bool {
		return q.Limit == 100 && q.Sort == model.SortCreatedAt && q.Published != nil && !*q.Published
	})).Return([]model.Post{}, int64(0), nil)

	_, _, err := f.svc.ListAll(ctx, query.Raw{"limit": "500", "published": "no"})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestCreate_DerivesSlugAndExcerpt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("ExistsBySlug", ctx, "hello-world", (*uuid.UUID)(nil)).Return(false, nil)
	f.repo.On("Create", ctx, mock.MatchedBy(func(p model.NewPost) bool {
		return p.Slug == "hello-world" &&
			p.Excerpt != nil && *p.Excerpt == "Intro text." &&
			p.AuthorID == f.author &&
			len(p.TagIDs) == 1 && p.TagIDs[0] == f.tag
	})).Return(&model.Post{Slug: "hello-world"}, nil)

	post, err := f.svc.Create(ctx, f.author, model.CreatePostRequest{
		Title:      "Hello World",
		Content:    "Intro *text*.\n\n```go\nfmt.Println()\n```",
		CategoryID: f.category.String(),
		TagIDs:     []string{f.tag.String(), f.tag.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	f.repo.AssertExpectations(t)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("ExistsBySlug", ctx, "taken", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := f.svc.Create(ctx, f.author, model.CreatePostRequest{
		Title: "T", Slug: "taken", Content: "c", CategoryID: f.category.String(),
	})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_GeneratedSlugCollisionGetsSuffix(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("ExistsBySlug", ctx, "go", (*uuid.UUID)(nil)).Return(true, nil).Once()
	f.repo.On("ExistsBySlug", ctx, mock.MatchedBy(func(s string) bool {
		return strings.HasPrefix(s, "go-") && len(s) == len("go-")+8
	}), (*uuid.UUID)(nil)).Return(false, nil).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(p model.NewPost) bool {
		return strings.HasPrefix(p.Slug, "go-") && utils.IsValidSlug(p.Slug)
	})).Return(&model.Post{Slug: "go-0a1b2c3d"}, nil)

	_, err := f.svc.Create(ctx, f.author, model.CreatePostRequest{
		Title: "Go 동시성", Content: "c", CategoryID: f.category.String(),
	})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestCreate_GeneratedSlugGivesUp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("ExistsBySlug", ctx, mock.Anything, (*uuid.UUID)(nil)).Return(true, nil)

	_, err := f.svc.Create(ctx, f.author, model.CreatePostRequest{
		Title: "Go", Content: "c", CategoryID: f.category.String(),
	})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	f.repo.AssertNumberOfCalls(t, "ExistsBySlug", maxSlugAttempts)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_UnknownReferences(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), f.author, model.CreatePostRequest{
		Title: "T", Content: "c", CategoryID: utils.NewID().String(), TagIDs: []string{utils.NewID().String()},
	})

	ve, ok := validator.IsValidationError(err)
	require.True(t, ok)
	lookup := ve.Lookup()
	assert.Contains(t, lookup, "payload.categoryId")
	assert.Contains(t, lookup, "tagIds")
}

func TestCreate_ValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), f.author, model.CreatePostRequest{Slug: "Bad Slug"})

	ve, ok := validator.IsValidationError(err)
	require.True(t, ok)
	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["payload.title"])
	assert.True(t, fields["payload.content"])
	assert.True(t, fields["payload.slug"])
	assert.True(t, fields["payload.categoryId"])
}

func TestCreate_RefetchFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("ExistsBySlug", ctx, "t", (*uuid.UUID)(nil)).Return(false, nil)
	f.repo.On("Create", ctx, mock.Anything).Return(nil, model.ErrRefetchFailed)

	_, err := f.svc.Create(ctx, f.author, model.CreatePostRequest{Title: "T", Content: "c", CategoryID: f.category.String()})
	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, 500, postErr.Status)
}

func TestUpdate_PartialPatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := utils.NewID()
	title := "Only title"

	f.repo.On("Update", ctx, id, model.PostPatch{Title: &title}).Return(&model.Post{ID: id, Title: title}, nil)

	post, err := f.svc.Update(ctx, id, model.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, post.Title)
	f.repo.AssertNotCalled(t, "ExistsBySlug", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_ReplacesTags(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := utils.NewID()
	empty := []string{}

	f.repo.On("Update", ctx, id, mock.MatchedBy(func(p model.PostPatch) bool {
		return p.TagIDs != nil && len(*p.TagIDs) == 0
	})).Return(&model.Post{ID: id}, nil)

	_, err := f.svc.Update(ctx, id, model.UpdatePostRequest{TagIDs: &empty})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestGetPublishedBySlug_CachesAndCountsViews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := utils.NewID()

	f.repo.On("FindBySlug", ctx, "hello").Return(&model.Post{ID: id, Slug: "hello", Published: true}, nil).Once()

	for range 3 {
		post, err := f.svc.GetPublishedBySlug(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, id, post.ID)
	}

	n, ok, err := f.cache.GetDelInt(ctx, "views:post:"+id.String())
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 3, n)
	f.repo.AssertNumberOfCalls(t, "FindBySlug", 1)
}

func TestGetPublishedBySlug_HidesDrafts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("FindBySlug", ctx, "draft").Return(&model.Post{Slug: "draft"}, nil)

	_, err := f.svc.GetPublishedBySlug(ctx, "draft")
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestDelete_InvalidatesDetailCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := utils.NewID()

	require.NoError(t, f.cache.Set(ctx, "post:slug:hello", "{}", 0))
	f.repo.On("Delete", ctx, id).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, id))

	var s string
	found, err := f.cache.Get(ctx, "post:slug:hello", &s)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateDetails_KeepsViewCounters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.cache.Set(ctx, "post:slug:hello", "{}", 0))
	_, err := f.cache.Increment(ctx, "views:post:abc")
	require.NoError(t, err)

	f.svc.InvalidateDetails(ctx)

	var s string
	found, err := f.cache.Get(ctx, "post:slug:hello", &s)
	require.NoError(t, err)
	assert.False(t, found)

	n, ok, err := f.cache.GetDelInt(ctx, "views:post:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 1, n)
}

func TestIsSlugAvailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	exclude := utils.NewID()

	f.repo.On("ExistsBySlug", ctx, "my-post", &exclude).Return(false, nil)

	ok, err := f.svc.IsSlugAvailable(ctx, "my-post", &exclude)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.svc.IsSlugAvailable(ctx, "Not Valid", nil)
	_, isValidation := validator.IsValidationError(err)
	assert.True(t, isValidation)
}
