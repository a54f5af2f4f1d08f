package repository

import (
	"fmt"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/utils"
)

const baseSelect = `
	SELECT
		c.id, c.name, c.slug, c.description, c.color, c.post_count,
		COUNT(p.id) FILTER (WHERE p.published) AS published_post_count,
		c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN posts p ON p.category_id = c.id`

var orderColumns = map[string]string{
	model.SortCreatedAt: "c.created_at",
	model.SortUpdatedAt: "c.updated_at",
	model.SortName:      "c.name",
	model.SortPostCount: "c.post_count",
}

func buildFilter(q model.ListQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if q.Search != nil {
		args = append(args, utils.ContainsPattern(*q.Search))
		conds = append(conds, fmt.Sprintf("c.name ILIKE $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + utils.JoinWithAnd(conds), args
}

func orderClause(q model.ListQuery) string {
	col, ok := orderColumns[q.Sort]
	if !ok {
		col = orderColumns[model.SortCreatedAt]
	}
	if q.Order == "desc" {
		return " ORDER BY " + col + " DESC, c.id DESC"
	}
	return " ORDER BY " + col + " ASC, c.id ASC"
}

// buildListQuery returns the paginated select, the matching count and the
// filter args; the select expects limit and offset appended to args.
func buildListQuery(q model.ListQuery) (string, string, []any) {
	where, args := buildFilter(q)
	n := len(args)

	list := baseSelect + where + " GROUP BY c.id" + orderClause(q) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	count := "SELECT COUNT(*) FROM categories c" + where

	return list, count, args
}

func limitOffset(q model.ListQuery) []any {
	return []any{q.Limit, pagination.Offset(q.Page, q.Limit)}
}
