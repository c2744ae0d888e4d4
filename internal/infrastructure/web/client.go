// Package web provides the HTTP client used to download copied URLs and images.
package web

import (
	"net/http"
	"time"

	"github.com/bnema/slickdir/internal/application/port"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// userAgentTransport stamps every request with a fixed User-Agent.
type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}

// NewClient creates an HTTP client sending userAgent on every request.
// Redirects follow the default client policy.
func NewClient(userAgent string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			userAgent: userAgent,
			next:      http.DefaultTransport,
		},
	}
}

var _ port.HTTPClient = (*http.Client)(nil)
