package model

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	MaxTitleLength   = 200
	MaxSlugLength    = 220
	MaxExcerptLength = 300
)

var slugRules = []validation.Rule{
	validation.Length(1, MaxSlugLength),
	validation.Match(slugRegex).Error("slug must be lowercase letters, digits and single hyphens"),
}

type CreatePostRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"`
	Excerpt    *string  `json:"excerpt"`
	CoverImage *string  `json:"coverImage"`
	Published  bool     `json:"published"`
	CategoryID string   `json:"categoryId"`
	TagIDs     []string `json:"tagIds"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Slug, slugRules...),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, MaxExcerptLength)),
		validation.Field(&r.CoverImage, is.URL),
		validation.Field(&r.CategoryID, validation.Required.Error("categoryId is required"), is.UUID),
		validation.Field(&r.TagIDs, validation.Each(is.UUID)),
	)
}

func (r CreatePostRequest) Values() map[string]any {
	return map[string]any{
		"title":      r.Title,
		"slug":       r.Slug,
		"excerpt":    r.Excerpt,
		"coverImage": r.CoverImage,
		"categoryId": r.CategoryID,
		"tagIds":     r.TagIDs,
	}
}

func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.Excerpt = blankToNil(r.Excerpt)
	r.CoverImage = blankToNil(r.CoverImage)
}

type UpdatePostRequest struct {
	Title      *string   `json:"title"`
	Slug       *string   `json:"slug"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt"`
	CoverImage *string   `json:"coverImage"`
	Published  *bool     `json:"published"`
	CategoryID *string   `json:"categoryId"`
	TagIDs     *[]string `json:"tagIds"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("title cannot be blank"), validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Slug, append([]validation.Rule{validation.NilOrNotEmpty.Error("slug cannot be blank")}, slugRules...)...),
		validation.Field(&r.Content, validation.NilOrNotEmpty.Error("content cannot be blank")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, MaxExcerptLength)),
		validation.Field(&r.CoverImage, is.URL),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty.Error("categoryId cannot be blank"), is.UUID),
		validation.Field(&r.TagIDs, validation.By(eachUUID)),
	)
}

func (r UpdatePostRequest) Values() map[string]any {
	out := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	set("title", r.Title)
	set("slug", r.Slug)
	set("excerpt", r.Excerpt)
	set("coverImage", r.CoverImage)
	set("categoryId", r.CategoryID)
	if r.TagIDs != nil {
		out["tagIds"] = *r.TagIDs
	}
	return out
}

func (r *UpdatePostRequest) Normalize() {
	for _, p := range []**string{&r.Title, &r.Slug, &r.CategoryID, &r.Excerpt, &r.CoverImage} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
}

// eachUUID validates a *[]string of ids; nil is valid.
func eachUUID(value interface{}) error {
	ids, _ := value.(*[]string)
	if ids == nil {
		return nil
	}
	for _, id := range *ids {
		if _, err := uuid.Parse(id); err != nil {
			return errors.New("must contain valid UUIDs only")
		}
	}
	return nil
}

// ParseIDs converts validated string ids, dropping duplicates.
func ParseIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
