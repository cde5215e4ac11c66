package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/preview"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
)

// Fixed messages for the job list.
const (
	NoJobsMessage     = "No jobs yet."
	LoadFailedMessage = "Failed to load jobs."
)

// JobsView is the job list as last loaded. A nil Err with no jobs is the empty
// state; a non-nil Err is the failed state.
type JobsView struct {
	Loaded bool
	Jobs   []jobs.Job
	Err    error
}

// NewJobsView wraps the result of a LoadJobs call.
func NewJobsView(list []jobs.Job, err error) JobsView {
	if err != nil {
		return JobsView{Loaded: true, Err: err}
	}
	return JobsView{Loaded: true, Jobs: list}
}

// Failed reports whether the load itself failed.
func (v JobsView) Failed() bool {
	return v.Err != nil
}

// Empty reports whether the load succeeded with no jobs.
func (v JobsView) Empty() bool {
	return v.Loaded && v.Err == nil && len(v.Jobs) == 0
}

// StatusClass maps an arbitrary job status to a CSS class. Unknown statuses
// are accepted; characters outside [a-z0-9-] collapse to '-'.
func StatusClass(status jobs.Opaque) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(status.String())) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	name := strings.TrimRight(b.String(), "-")
	if name == "" {
		name = "unknown"
	}
	return "status-" + name
}

// StatusLine summarizes a probe result in one line.
func StatusLine(r probe.Result) string {
	switch {
	case r.OK:
		return fmt.Sprintf("API online (%d) at %s", r.StatusCode, r.URLTried)
	case r.URLTried == "":
		return "API offline: " + r.Error
	case r.HasStatus():
		return fmt.Sprintf("API offline (HTTP %d) at %s", r.StatusCode, r.URLTried)
	default:
		return fmt.Sprintf("API offline at %s: %s", r.URLTried, r.Error)
	}
}

// SubmissionText is the display text of a submission outcome. Submitted
// replies are pretty-printed and previewed.
func SubmissionText(o jobs.Outcome, maxLength int) string {
	switch o.Kind {
	case jobs.OutcomeSubmitted:
		var buf bytes.Buffer
		if err := json.Indent(&buf, o.Response, "", "  "); err != nil {
			return preview.Preview(string(o.Response), maxLength)
		}
		return preview.Preview(buf.String(), maxLength)
	case jobs.OutcomeInvalidPayload:
		return o.Message
	default:
		return jobs.GenericFailureMessage
	}
}
