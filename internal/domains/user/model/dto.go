package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpsertUserRequest creates a user or refreshes the profile of an existing one,
// matched by email.
type UpsertUserRequest struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	Role  string  `json:"role"`
}

func (r UpsertUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.Role, validation.Required, validation.In(RoleAdmin, RoleUser)),
	)
}

func (r *UpsertUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = RoleUser
	}
	if r.Image != nil {
		if v := strings.TrimSpace(*r.Image); v != "" {
			r.Image = &v
		} else {
			r.Image = nil
		}
	}
}

func (r UpsertUserRequest) Values() map[string]any {
	return map[string]any{
		"email": r.Email,
		"name":  r.Name,
		"image": r.Image,
		"role":  r.Role,
	}
}
