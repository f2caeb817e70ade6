package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

var ErrInvalidURL = errors.New("url cannot be fetched")

type URLValidator struct {
	allowedSchemes []string
}

// NewURLValidator creates a new URL validator with the given configuration
func NewURLValidator(config *FetchConfig) *URLValidator {
	return &URLValidator{
		allowedSchemes: config.AllowedSchemes,
	}
}

// Validate parses rawURL and checks it is an absolute URL with an allowed scheme.
func (v *URLValidator) Validate(rawURL string) (*url.URL, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !v.IsValidPageURL(u) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	return u, nil
}

func (v *URLValidator) IsValidPageURL(u *url.URL) bool {
	return u.Host != "" && slices.Contains(v.allowedSchemes, u.Scheme)
}
