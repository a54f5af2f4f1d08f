package model

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a post label.
// PostCount counts every associated post and is stored on the row.
// PublishedPostCount counts published posts only and is computed when read.
type Tag struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	PostCount          int       `json:"postCount"`
	PublishedPostCount int       `json:"publishedPostCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TagPatch carries the columns an update may change; nil means unchanged.
type TagPatch struct {
	Name *string
	Slug *string
}

func (p TagPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil
}
