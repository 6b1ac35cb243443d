package ownhttp

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header).
// Requests are throttled if limiter is not nil
func New(userAgent string, limiter *rate.Limiter) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport
	if limiter != nil {
		transport = NewThrottleTransport(transport, limiter)
	}
	return &http.Client{Transport: NewAddHeaderTransport(transport, userAgent)}
}

// NewLimiter returns a limiter allowing perSecond requests per second.
// zero or less disables the limit and returns nil
func NewLimiter(perSecond int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Second/time.Duration(perSecond)), perSecond)
}
