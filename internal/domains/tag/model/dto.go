package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CreateTagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 50),
		),
		validation.Field(&r.Slug,
			validation.When(r.Slug != "",
				validation.Length(1, 60),
				validation.Match(slugRegex).Error("slug must be lowercase letters, digits and single hyphens"),
			),
		),
	)
}

// Values returns the submitted fields for validation error reporting.
func (r CreateTagRequest) Values() map[string]any {
	return map[string]any{"name": r.Name, "slug": r.Slug}
}

// Normalize trims surrounding whitespace.
func (r *CreateTagRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
}

type UpdateTagRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (r UpdateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name cannot be blank"),
			validation.RuneLength(1, 50),
		),
		validation.Field(&r.Slug,
			validation.NilOrNotEmpty.Error("slug cannot be blank"),
			validation.Length(1, 60),
			validation.Match(slugRegex).Error("slug must be lowercase letters, digits and single hyphens"),
		),
	)
}

func (r UpdateTagRequest) Values() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Slug != nil {
		out["slug"] = *r.Slug
	}
	return out
}

func (r *UpdateTagRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Slug != nil {
		v := strings.TrimSpace(*r.Slug)
		r.Slug = &v
	}
}

// ToPatch maps the request onto the repository patch.
func (r UpdateTagRequest) ToPatch() TagPatch {
	return TagPatch{Name: r.Name, Slug: r.Slug}
}
