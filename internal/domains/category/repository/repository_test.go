package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/infrastructure/database/dbtest"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/utils"
)

func TestBuildListQuery(t *testing.T) {
	list, count, args := buildListQuery(model.ListQuery{
		Page: 3, Limit: 10, Search: utils.StringPtr("50%"), Sort: model.SortUpdatedAt, Order: query.Desc,
	})

	assert.Equal(t, []any{`%50\%%`}, args)
	assert.Contains(t, list, "WHERE c.name ILIKE $1 GROUP BY")
	assert.NotContains(t, list, "c.description ILIKE")
	assert.Contains(t, list, "ORDER BY c.updated_at DESC, c.id DESC LIMIT $2 OFFSET $3")
	assert.Equal(t, "SELECT COUNT(*) FROM categories c WHERE c.name ILIKE $1", count)
	assert.Equal(t, []any{10, 20}, limitOffset(model.ListQuery{Page: 3, Limit: 10}))

	huge := limitOffset(model.ListQuery{Page: 1_000_000_000_000_000_000, Limit: 30})
	assert.GreaterOrEqual(t, huge[1].(int), 0)
}

func TestCategoryRow_ToModel(t *testing.T) {
	blank := ""
	row := categoryRow{Name: "Go", Description: &blank, PostCount: 3, Published: 2}

	c := row.toModel()
	assert.Nil(t, c.Description)
	assert.Nil(t, c.Color)
	assert.Equal(t, 3, c.PostCount)
	assert.Equal(t, 2, c.PublishedPostCount)
}

func TestPostgresRepository_Lifecycle(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := t.Context()
	repo := NewPostgresRepository(pool)

	created, err := repo.Create(ctx, &model.Category{
		ID: utils.NewID(), Name: "Backend", Slug: "backend", Color: utils.StringPtr("#123abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.PostCount)

	author := dbtest.SeedUser(t, pool)
	dbtest.SeedPost(t, pool, author, created.ID, "one", true)
	dbtest.SeedPost(t, pool, author, created.ID, "two", false)

	require.NoError(t, repo.UpdatePostCount(ctx, created.ID))
	got, err := repo.FindBySlug(ctx, "backend")
	require.NoError(t, err)
	assert.Equal(t, 2, got.PostCount)
	assert.Equal(t, 1, got.PublishedPostCount)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrCategoryHasPosts)

	empty := ""
	updated, err := repo.Update(ctx, created.ID, model.CategoryPatch{Color: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Color)

	other := dbtest.SeedCategory(t, pool, "Frontend", "frontend")
	require.NoError(t, repo.Delete(ctx, other))
	assert.ErrorIs(t, repo.Delete(ctx, other), model.ErrCategoryNotFound)

	exists, err := repo.ExistsByName(ctx, "Backend", &created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
