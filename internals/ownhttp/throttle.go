package ownhttp

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// slowWait is the limiter delay that gets logged
const slowWait = time.Second

// ThrottleTransport waits for the limiter before every request.
// A nil limiter does not throttle at all
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

// RoundTrip implements http.RoundTripper. It returns early if the request
// context is done or its deadline can not be met
func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tt.limiter != nil {
		start := time.Now()
		if err := tt.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit for %s: %w", req.URL.Host, err)
		}
		if waited := time.Since(start); waited >= slowWait {
			log.Printf("[INFO] --rate-limit delayed %s by %s", req.URL.Path, waited.Round(time.Millisecond))
		}
	}

	return tt.T.RoundTrip(req)
}

// NewThrottleTransport wraps T (http.DefaultTransport if nil)
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T: T, limiter: limiter}
}
