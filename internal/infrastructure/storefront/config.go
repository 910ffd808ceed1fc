// Package storefront talks to the remote commerce platform's GraphQL
// storefront API and exposes the product listings the shop merges with
// its own catalog.
package storefront

import (
	"errors"
	"strings"
)

// Errors for storefront configuration
var (
	ErrConfigMissingAPIURL      = errors.New("storefront: api url is required")
	ErrConfigMissingAccessToken = errors.New("storefront: access token is required")
)

// Config holds configuration for the storefront API integration
type Config struct {
	// APIURL is the full GraphQL endpoint URL, including the API version path
	APIURL string
	// AccessToken is the public storefront access token
	AccessToken string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// MaxRetries is how many times transient failures are retried
	MaxRetries int
}

// NewConfig creates a new storefront configuration with defaults
func NewConfig(apiURL, accessToken string) *Config {
	return &Config{
		APIURL:         apiURL,
		AccessToken:    accessToken,
		TimeoutSeconds: 10,
		MaxRetries:     1,
	}
}

// Validate validates the storefront configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return ErrConfigMissingAPIURL
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return ErrConfigMissingAccessToken
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return nil
}
