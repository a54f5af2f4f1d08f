package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/utils"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	listSQL, countSQL, args := buildListQuery(model.ListQuery{
		Page: 1, Limit: 20, Sort: model.SortName, Order: query.Desc,
	})

	assert.Empty(t, args)
	assert.Contains(t, listSQL, "ORDER BY t.name DESC, t.id DESC")
	assert.Contains(t, listSQL, "LIMIT $1 OFFSET $2")
	assert.Contains(t, listSQL, "COUNT(p.id) FILTER (WHERE p.published)")
	assert.Equal(t, "SELECT COUNT(*) FROM tags t", countSQL)
}

func TestBuildListQuery_Search(t *testing.T) {
	listSQL, countSQL, args := buildListQuery(model.ListQuery{
		Page: 2, Limit: 10, Search: utils.StringPtr("go_lang"), Sort: model.SortPostCount, Order: query.Asc,
	})

	assert.Equal(t, []any{`%go\_lang%`}, args)
	assert.Contains(t, listSQL, "WHERE t.name ILIKE $1 GROUP BY")
	assert.Contains(t, listSQL, "ORDER BY t.post_count ASC")
	assert.Contains(t, listSQL, "LIMIT $2 OFFSET $3")
	assert.Equal(t, "SELECT COUNT(*) FROM tags t WHERE t.name ILIKE $1", countSQL)
	assert.NotContains(t, listSQL, "t.slug ILIKE")
	assert.Equal(t, []any{10, 10}, pageArgs(model.ListQuery{Page: 2, Limit: 10}))
}

func TestBuildOrderBy_UnknownSortFallsBack(t *testing.T) {
	assert.Equal(t, " ORDER BY t.created_at ASC, t.id ASC", buildOrderBy(model.ListQuery{Sort: "bogus"}))
}

func TestPageArgs_HugePageStaysNonNegative(t *testing.T) {
	args := pageArgs(model.ListQuery{Page: 1_000_000_000_000_000_000, Limit: 30})
	assert.Equal(t, 30, args[0])
	assert.GreaterOrEqual(t, args[1].(int), 0)
}
