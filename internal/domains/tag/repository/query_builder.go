package repository

import (
	"fmt"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/utils"
)

const selectColumns = `
	t.id, t.name, t.slug, t.post_count,
	COUNT(p.id) FILTER (WHERE p.published) AS published_post_count,
	t.created_at, t.updated_at`

const fromWithPosts = `
	FROM tags t
	LEFT JOIN post_tags pt ON pt.tag_id = t.id
	LEFT JOIN posts p ON p.id = pt.post_id`

var sortColumns = map[string]string{
	model.SortCreatedAt: "t.created_at",
	model.SortUpdatedAt: "t.updated_at",
	model.SortName:      "t.name",
	model.SortPostCount: "t.post_count",
}

// buildWhere returns the WHERE clause (possibly empty) and its arguments.
func buildWhere(q model.ListQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if q.Search != nil {
		args = append(args, utils.ContainsPattern(*q.Search))
		clauses = append(clauses, fmt.Sprintf("t.name ILIKE $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

func buildOrderBy(q model.ListQuery) string {
	col, ok := sortColumns[q.Sort]
	if !ok {
		col = sortColumns[model.SortCreatedAt]
	}
	dir := "ASC"
	if q.Order == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, t.id %s", col, dir, dir)
}

// buildListQuery returns the page query, the count query and their shared
// filter arguments. The page query takes two extra args: limit and offset.
func buildListQuery(q model.ListQuery) (listSQL, countSQL string, args []any) {
	where, args := buildWhere(q)

	listSQL = "SELECT" + selectColumns + fromWithPosts + where +
		" GROUP BY t.id" + buildOrderBy(q) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	countSQL = "SELECT COUNT(*) FROM tags t" + where

	return listSQL, countSQL, args
}

func pageArgs(q model.ListQuery) []any {
	return []any{q.Limit, pagination.Offset(q.Page, q.Limit)}
}
