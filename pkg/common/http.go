package common

import (
	_ "embed"
	"net/http"
	"strings"
	"time"
)

//go:embed VERSION
var version string

// Version returns the release version embedded in the binary.
func Version() string {
	return strings.TrimSpace(version)
}

type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper by setting the User-Agent header.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so the caller's request headers are left untouched
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.transport.RoundTrip(req)
}

// HTTPClient returns an http client identifying itself as SolarCheck, used for
// every call to an external data source.
func HTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &userAgentTransport{
			transport: http.DefaultTransport,
			userAgent: "SolarCheck/" + Version(),
		},
		Timeout: timeout,
	}
}
