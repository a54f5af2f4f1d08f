package model

import (
	"blog-backend/internal/shared/query"
)

const (
	SortCreatedAt   = "createdAt"
	SortUpdatedAt   = "updatedAt"
	SortTitle       = "title"
	SortViewCount   = "viewCount"
	SortPublishedAt = "publishedAt"
)

var sortKeys = []string{SortCreatedAt, SortUpdatedAt, SortTitle, SortViewCount, SortPublishedAt}

// ListQuery is a normalized post listing request.
type ListQuery struct {
	Page         int
	Limit        int
	Search       *string
	CategorySlug *string
	TagSlug      *string
	Published    *bool
	Sort         string
	Order        query.Order
}

// ListOptions differ between the public site and the admin console.
type ListOptions struct {
	DefaultLimit int
	MaxLimit     int
	DefaultSort  string
	Mode         query.Mode
	// PublishedOnly forces Published=true and ignores the published parameter.
	PublishedOnly bool
}

// PublicListOptions: published posts newest first, limit clamped to [1, maxLimit].
func PublicListOptions(defaultLimit, maxLimit int, mode query.Mode) ListOptions {
	return ListOptions{
		DefaultLimit:  defaultLimit,
		MaxLimit:      maxLimit,
		DefaultSort:   SortPublishedAt,
		Mode:          mode,
		PublishedOnly: true,
	}
}

// AdminListOptions: every post, most recently created first.
func AdminListOptions(defaultLimit, maxLimit int, mode query.Mode) ListOptions {
	return ListOptions{
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
		DefaultSort:  SortCreatedAt,
		Mode:         mode,
	}
}

// NormalizeListQuery parses raw query parameters into a ListQuery.
// categorySlug and tagSlug win over the legacy category and tag keys.
func NormalizeListQuery(raw query.Raw, opts ListOptions) (ListQuery, error) {
	p := query.NewParser(raw, opts.Mode)

	defaultSort := opts.DefaultSort
	if defaultSort == "" {
		defaultSort = SortCreatedAt
	}

	q := ListQuery{
		Page:         p.Int("page", 1, 1),
		Limit:        query.Clamp(p.Int("limit", opts.DefaultLimit, 1), 1, opts.MaxLimit),
		Search:       p.Search("search"),
		CategorySlug: p.First("categorySlug", "category"),
		TagSlug:      p.First("tagSlug", "tag"),
		Sort:         p.Enum("sort", sortKeys, defaultSort),
		Order:        p.Order("order", query.Desc),
	}

	if opts.PublishedOnly {
		t := true
		q.Published = &t
	} else {
		q.Published = p.TriBool("published")
	}

	return q, p.Err()
}
