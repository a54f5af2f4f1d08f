package repository

import (
	"fmt"
	"strings"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/utils"
)

const postColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.cover_image, p.published,
	p.view_count, p.category_id, p.author_id, p.created_at, p.updated_at, p.published_at,
	c.name, c.slug, c.color,
	u.name, u.image`

const postJoins = `
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.author_id`

var postSortColumns = map[string]string{
	model.SortCreatedAt:   "p.created_at",
	model.SortUpdatedAt:   "p.updated_at",
	model.SortTitle:       "p.title",
	model.SortViewCount:   "p.view_count",
	model.SortPublishedAt: "p.published_at",
}

// whereBuilder numbers placeholders as conditions are added.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(format, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + utils.JoinWithAnd(w.conds)
}

func buildPostFilter(q model.ListQuery) *whereBuilder {
	w := &whereBuilder{}

	if q.Published != nil {
		w.add("p.published = ?", *q.Published)
	}
	if q.Search != nil {
		w.add("(p.title ILIKE ? OR p.content ILIKE ? OR p.excerpt ILIKE ?)", utils.ContainsPattern(*q.Search))
	}
	if q.CategorySlug != nil {
		w.add("c.slug = ?", *q.CategorySlug)
	}
	if q.TagSlug != nil {
		w.add(`EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = ?)`, *q.TagSlug)
	}

	return w
}

// buildPostOrder keeps drafts (NULL published_at) last whatever the direction.
func buildPostOrder(q model.ListQuery) string {
	col, ok := postSortColumns[q.Sort]
	if !ok {
		col = postSortColumns[model.SortCreatedAt]
	}

	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}

	nulls := ""
	if q.Sort == model.SortPublishedAt {
		nulls = " NULLS LAST"
	}

	return fmt.Sprintf(" ORDER BY %s %s%s, p.id %s", col, dir, nulls, dir)
}

// buildPostListQuery returns the page query, the count query and the filter
// args. The page query takes limit and offset after the filter args.
func buildPostListQuery(q model.ListQuery) (string, string, []any) {
	w := buildPostFilter(q)
	n := len(w.args)

	list := "SELECT" + postColumns + postJoins + w.sql() + buildPostOrder(q) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	count := "SELECT COUNT(*)" + postJoins + w.sql()

	return list, count, w.args
}

func postPageArgs(q model.ListQuery) []any {
	return []any{q.Limit, pagination.Offset(q.Page, q.Limit)}
}

// buildPostUpdate renders the SET list of an update; $1 is the post id.
// published_at follows the publish state: stamped on a false to true
// transition, cleared on unpublish, untouched otherwise.
func buildPostUpdate(patch model.PostPatch) (string, []any) {
	sets := []string{"updated_at = now()"}
	var args []any

	param := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args)+1)
	}

	if patch.Title != nil {
		sets = append(sets, "title = "+param(*patch.Title))
	}
	if patch.Slug != nil {
		sets = append(sets, "slug = "+param(*patch.Slug))
	}
	if patch.Content != nil {
		sets = append(sets, "content = "+param(*patch.Content))
	}
	if patch.Excerpt != nil {
		sets = append(sets, "excerpt = NULLIF("+param(*patch.Excerpt)+", '')")
	}
	if patch.CoverImage != nil {
		sets = append(sets, "cover_image = NULLIF("+param(*patch.CoverImage)+", '')")
	}
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = "+param(*patch.CategoryID))
	}
	if patch.Published != nil {
		ph := param(*patch.Published)
		sets = append(sets,
			"published = "+ph,
			fmt.Sprintf("published_at = CASE WHEN NOT %[1]s THEN NULL WHEN published THEN published_at ELSE now() END", ph),
		)
	}

	return "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id = $1", args
}
