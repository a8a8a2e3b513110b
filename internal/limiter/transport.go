package limiter

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// limitedTransport wraps http.RoundTripper and sends requests with maximum rate limit.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// NewTransport creates rate limited http.RoundTripper.
// maxRate - maximum number of requests per second. Non positive maxRate disables limiting.
// If base is nil, http.DefaultTransport is used.
func NewTransport(base http.RoundTripper, maxRate float64) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Limit(maxRate)
	if maxRate <= 0 {
		limit = rate.Inf
	}

	return &limitedTransport{
		base:    base,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// RoundTrip executes http request. If limit is exceeded, blocks until call rate is within limit.
func (t *limitedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("waiting for transport limiter: %w", err)
	}

	return t.base.RoundTrip(r)
}
