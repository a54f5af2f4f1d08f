package model

import (
	"blog-backend/internal/shared/query"
)

const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortName      = "name"
	SortPostCount = "postCount"
)

var sortKeys = []string{SortCreatedAt, SortUpdatedAt, SortName, SortPostCount}

type ListQuery struct {
	Page   int
	Limit  int
	Search *string
	Sort   string
	Order  query.Order
}

type ListOptions struct {
	DefaultLimit int
	MaxLimit     int
	Mode         query.Mode
}

func DefaultListOptions(mode query.Mode) ListOptions {
	return ListOptions{DefaultLimit: 50, MaxLimit: 100, Mode: mode}
}

// NormalizeListQuery applies the category listing defaults: sort createdAt, order asc.
func NormalizeListQuery(raw query.Raw, opts ListOptions) (ListQuery, error) {
	p := query.NewParser(raw, opts.Mode)

	page := p.Int("page", 1, 1)
	limit := query.Clamp(p.Int("limit", opts.DefaultLimit, 1), 1, opts.MaxLimit)

	return ListQuery{
		Page:   page,
		Limit:  limit,
		Search: p.Search("search"),
		Sort:   p.Enum("sort", sortKeys, SortCreatedAt),
		Order:  p.Order("order", query.Asc),
	}, p.Err()
}
