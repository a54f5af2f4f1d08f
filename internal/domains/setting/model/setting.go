package model

import (
	"strconv"
)

// Storage keys of the site_settings table.
const (
	KeySiteTitle       = "siteTitle"
	KeySiteDescription = "siteDescription"
	KeySiteURL         = "siteUrl"
	KeyPostsPerPage    = "postsPerPage"
	KeyProfileImageURL = "profileImageUrl"
)

// Settings is the flattened view of the key/value store.
type Settings struct {
	SiteTitle       string  `json:"siteTitle"`
	SiteDescription string  `json:"siteDescription"`
	SiteURL         string  `json:"siteUrl"`
	PostsPerPage    int     `json:"postsPerPage"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// FromValues overlays stored values on defaults. Keys never saved, or a
// postsPerPage that no longer parses, keep the default.
func FromValues(values map[string]string, defaults Settings) Settings {
	s := defaults

	if v, ok := values[KeySiteTitle]; ok {
		s.SiteTitle = v
	}
	if v, ok := values[KeySiteDescription]; ok {
		s.SiteDescription = v
	}
	if v, ok := values[KeySiteURL]; ok {
		s.SiteURL = v
	}
	if v, ok := values[KeyPostsPerPage]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= MinPostsPerPage && n <= MaxPostsPerPage {
			s.PostsPerPage = n
		}
	}
	if v, ok := values[KeyProfileImageURL]; ok && v != "" {
		url := v
		s.ProfileImageURL = &url
	}

	return s
}
