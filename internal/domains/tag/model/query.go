package model

import (
	"blog-backend/internal/shared/query"
)

// Sort keys accepted by tag listings.
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortName      = "name"
	SortPostCount = "postCount"
)

var sortKeys = []string{SortCreatedAt, SortUpdatedAt, SortName, SortPostCount}

// ListQuery is a normalized tag listing request.
type ListQuery struct {
	Page   int
	Limit  int
	Search *string
	Sort   string
	Order  query.Order
}

// ListOptions are the caller specific defaults and bounds.
type ListOptions struct {
	DefaultLimit int
	MaxLimit     int
	Mode         query.Mode
}

// DefaultListOptions is used when the caller has no specific bounds.
func DefaultListOptions(mode query.Mode) ListOptions {
	return ListOptions{DefaultLimit: 50, MaxLimit: 100, Mode: mode}
}

// NormalizeListQuery parses raw query parameters. In lenient mode the error is
// always nil; in strict mode malformed values are reported.
func NormalizeListQuery(raw query.Raw, opts ListOptions) (ListQuery, error) {
	p := query.NewParser(raw, opts.Mode)

	q := ListQuery{
		Page:   p.Int("page", 1, 1),
		Limit:  query.Clamp(p.Int("limit", opts.DefaultLimit, 1), 1, opts.MaxLimit),
		Search: p.Search("search"),
		Sort:   p.Enum("sort", sortKeys, SortCreatedAt),
		Order:  p.Order("order", query.Asc),
	}

	return q, p.Err()
}
