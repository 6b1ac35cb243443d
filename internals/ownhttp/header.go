package ownhttp

import (
	"fmt"
	"net/http"
)

// AddHeaderTransport sets the User-Agent header on every request that has none
type AddHeaderTransport struct {
	T         http.RoundTripper
	UserAgent string
}

// RoundTrip implements http.RoundTripper
func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrip must not modify the request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", adt.UserAgent)
	}
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T (http.DefaultTransport if nil)
func NewAddHeaderTransport(T http.RoundTripper, userAgent string) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T, userAgent}
}

// UserAgent formats the User-Agent used for all requests
func UserAgent(version string, platform string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("NuxCraft-PyCher/%s (%s)", version, platform)
}
