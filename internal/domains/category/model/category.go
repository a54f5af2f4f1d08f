package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts; every post belongs to exactly one.
type Category struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Description        *string   `json:"description"`
	Color              *string   `json:"color"`
	PostCount          int       `json:"postCount"`
	PublishedPostCount int       `json:"publishedPostCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CategoryPatch lists the columns to change. A non-nil pointer to "" clears
// the nullable description/color columns.
type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Color       *string
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil && p.Color == nil
}
