// Package endpoint resolves the base URL every API request is built from.
package endpoint

import "strings"

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Config is the resolved API base. It is derived once and never mutated.
type Config struct {
	Base string
}

// Resolve canonicalizes an optional override. Blank input falls back to
// DefaultBaseURL; otherwise trailing slashes are stripped.
func Resolve(override string) Config {
	base := strings.TrimRight(strings.TrimSpace(override), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{Base: base}
}

// URL joins the base with path. A missing leading slash is added.
func (c Config) URL(path string) string {
	if path == "" {
		return c.Base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.Base + path
}

// String returns the base URL.
func (c Config) String() string {
	return c.Base
}
