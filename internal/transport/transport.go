// Package transport builds the outbound HTTP stack shared by every API call.
package transport

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JakeFAU/quantum-job-console/internal/metrics"
)

// RequestIDHeader carries a per-request correlation id to the API.
const RequestIDHeader = "X-Request-ID"

// DefaultUserAgent identifies the console to the API.
const DefaultUserAgent = "qjobs-console/0.1"

// Config controls the outbound client.
type Config struct {
	UserAgent string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
	// Base overrides the underlying RoundTripper (tests).
	Base http.RoundTripper
}

// NewClient returns an http.Client whose transport stamps request ids and
// records request metrics.
func NewClient(cfg Config) *http.Client {
	return &http.Client{
		Transport: Wrap(cfg.Base, cfg.UserAgent),
		Timeout:   cfg.Timeout,
	}
}

// Wrap decorates base with request-id, user-agent and metrics handling.
// A nil base selects a pooled default transport.
func Wrap(base http.RoundTripper, userAgent string) http.RoundTripper {
	if base == nil {
		base = newHTTPTransport()
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &instrumentedTransport{base: base, userAgent: userAgent}
}

type instrumentedTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, errors.New("transport received nil request")
	}
	out := req.Clone(req.Context())
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	code := 0
	if resp != nil {
		code = resp.StatusCode
	}
	metrics.ObserveClientRequest(out.URL.String(), out.Method, out.URL.Path, code, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("roundtrip %s %s: %w", out.Method, out.URL.Redacted(), err)
	}
	return resp, nil
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
