package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MinPostsPerPage = 5
	MaxPostsPerPage = 50
)

var httpSchemeRegex = regexp.MustCompile(`^https?://`)

// UpdateSettingsRequest is a partial update; nil fields keep their stored value.
type UpdateSettingsRequest struct {
	SiteTitle       *string `json:"siteTitle"`
	SiteDescription *string `json:"siteDescription"`
	SiteURL         *string `json:"siteUrl"`
	PostsPerPage    *int    `json:"postsPerPage"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

var httpURLRules = []validation.Rule{
	is.URL.Error("must be a valid URL"),
	validation.Match(httpSchemeRegex).Error("must be an http or https URL"),
}

func (r UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SiteTitle,
			validation.NilOrNotEmpty.Error("siteTitle cannot be blank"),
			validation.RuneLength(1, 60).Error("siteTitle must be between 1 and 60 characters"),
		),
		validation.Field(&r.SiteDescription,
			validation.NilOrNotEmpty.Error("siteDescription cannot be blank"),
			validation.RuneLength(1, 160).Error("siteDescription must be between 1 and 160 characters"),
		),
		validation.Field(&r.SiteURL,
			append([]validation.Rule{validation.NilOrNotEmpty.Error("siteUrl cannot be blank")}, httpURLRules...)...,
		),
		validation.Field(&r.PostsPerPage, validation.By(postsPerPageRange)),
		validation.Field(&r.ProfileImageURL, httpURLRules...),
	)
}

// postsPerPageRange checks *int bounds; ozzo's Min/Max skip a zero value,
// so 0 would otherwise pass.
func postsPerPageRange(value interface{}) error {
	n, _ := value.(*int)
	if n == nil {
		return nil
	}
	if *n < MinPostsPerPage || *n > MaxPostsPerPage {
		return errors.New("postsPerPage must be between 5 and 50")
	}
	return nil
}

func (r *UpdateSettingsRequest) Normalize() {
	for _, p := range []**string{&r.SiteTitle, &r.SiteDescription, &r.SiteURL, &r.ProfileImageURL} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
}

// Values returns the submitted fields, used for error reporting.
func (r UpdateSettingsRequest) Values() map[string]any {
	out := map[string]any{}
	if r.SiteTitle != nil {
		out[KeySiteTitle] = *r.SiteTitle
	}
	if r.SiteDescription != nil {
		out[KeySiteDescription] = *r.SiteDescription
	}
	if r.SiteURL != nil {
		out[KeySiteURL] = *r.SiteURL
	}
	if r.PostsPerPage != nil {
		out[KeyPostsPerPage] = *r.PostsPerPage
	}
	if r.ProfileImageURL != nil {
		out[KeyProfileImageURL] = *r.ProfileImageURL
	}
	return out
}

// ToStorage converts the submitted fields to store rows. An empty
// profileImageUrl is stored as "" which reads back as unset.
func (r UpdateSettingsRequest) ToStorage() map[string]string {
	out := make(map[string]string)
	if r.SiteTitle != nil {
		out[KeySiteTitle] = *r.SiteTitle
	}
	if r.SiteDescription != nil {
		out[KeySiteDescription] = *r.SiteDescription
	}
	if r.SiteURL != nil {
		out[KeySiteURL] = strings.TrimRight(*r.SiteURL, "/")
	}
	if r.PostsPerPage != nil {
		out[KeyPostsPerPage] = strconv.Itoa(*r.PostsPerPage)
	}
	if r.ProfileImageURL != nil {
		out[KeyProfileImageURL] = *r.ProfileImageURL
	}
	return out
}
