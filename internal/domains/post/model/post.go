package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog article with its category, author and tags resolved.
type Post struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Content     string           `json:"content"`
	Excerpt     *string          `json:"excerpt"`
	CoverImage  *string          `json:"coverImage"`
	Published   bool             `json:"published"`
	ViewCount   int              `json:"viewCount"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	AuthorID    uuid.UUID        `json:"authorId"`
	Category    *CategorySummary `json:"category,omitempty"`
	Author      *AuthorSummary   `json:"author,omitempty"`
	Tags        []TagSummary     `json:"tags"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	PublishedAt *time.Time       `json:"publishedAt"`
}

type CategorySummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color *string   `json:"color"`
}

type TagSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type AuthorSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image *string   `json:"image"`
}

// NewPost is what the repository inserts.
type NewPost struct {
	ID         uuid.UUID
	Title      string
	Slug       string
	Content    string
	Excerpt    *string
	CoverImage *string
	Published  bool
	CategoryID uuid.UUID
	AuthorID   uuid.UUID
	TagIDs     []uuid.UUID
}

// PostPatch holds the changed columns. Excerpt/CoverImage pointing at ""
// clear the column. TagIDs, when non-nil, replaces the whole tag set.
type PostPatch struct {
	Title      *string
	Slug       *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Published  *bool
	CategoryID *uuid.UUID
	TagIDs     *[]uuid.UUID
}

func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Slug == nil && p.Content == nil && p.Excerpt == nil &&
		p.CoverImage == nil && p.Published == nil && p.CategoryID == nil && p.TagIDs == nil
}
