package probe

import (
	"errors"
	"time"
)

// ErrNoCandidates is reported when Probe is called without any paths.
var ErrNoCandidates = errors.New("no candidate paths")

// DefaultPaths is the candidate order used when none is configured.
var DefaultPaths = []string{"/health", "/"}

// Result is the outcome of one candidate attempt.
//
// OK implies StatusCode is set and Error is empty. A transport failure leaves
// StatusCode at zero and sets Error. A non-2xx reply sets StatusCode and
// leaves Error empty.
type Result struct {
	OK          bool          `json:"ok"`
	URLTried    string        `json:"url_tried"`
	StatusCode  int           `json:"status_code,omitempty"`
	BodyPreview string        `json:"body_preview,omitempty"`
	Error       string        `json:"error,omitempty"`
	CheckedAt   time.Time     `json:"checked_at"`
	Duration    time.Duration `json:"duration"`
}

// HasStatus reports whether a response was received.
func (r Result) HasStatus() bool {
	return r.StatusCode != 0
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
