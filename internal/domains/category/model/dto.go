package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

const slugMessage = "slug must be lowercase letters, digits and single hyphens"

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 50),
		),
		validation.Field(&r.Slug,
			validation.Length(1, 60),
			validation.Match(slugRegex).Error(slugMessage),
		),
		validation.Field(&r.Description, validation.RuneLength(0, 200)),
		validation.Field(&r.Color, validation.Match(colorRegex).Error("color must be #RGB or #RRGGBB")),
	)
}

func (r CreateCategoryRequest) Values() map[string]any {
	return map[string]any{
		"name":        r.Name,
		"slug":        r.Slug,
		"description": deref(r.Description),
		"color":       deref(r.Color),
	}
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Description = trimOrNil(r.Description)
	r.Color = trimOrNil(r.Color)
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name cannot be blank"),
			validation.RuneLength(1, 50),
		),
		validation.Field(&r.Slug,
			validation.NilOrNotEmpty.Error("slug cannot be blank"),
			validation.Length(1, 60),
			validation.Match(slugRegex).Error(slugMessage),
		),
		validation.Field(&r.Description, validation.RuneLength(0, 200)),
		validation.Field(&r.Color, validation.Match(colorRegex).Error("color must be #RGB or #RRGGBB")),
	)
}

func (r UpdateCategoryRequest) Values() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Slug != nil {
		out["slug"] = *r.Slug
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Color != nil {
		out["color"] = *r.Color
	}
	return out
}

// Normalize trims every provided field. Description and color keep an empty
// string so the update clears them.
func (r *UpdateCategoryRequest) Normalize() {
	for _, p := range []**string{&r.Name, &r.Slug, &r.Description, &r.Color} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
}

func (r UpdateCategoryRequest) ToPatch() CategoryPatch {
	return CategoryPatch{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Color:       r.Color,
	}
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
