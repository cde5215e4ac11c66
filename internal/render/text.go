package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
)

// Text writes plain-text views for terminals.
type Text struct {
	w          io.Writer
	previewLen int
}

// NewText returns a Text renderer writing to w.
func NewText(w io.Writer, previewLen int) *Text {
	return &Text{w: w, previewLen: previewLen}
}

// Status writes the status line and, when present, the body preview.
func (t *Text) Status(r probe.Result) error {
	if _, err := fmt.Fprintln(t.w, StatusLine(r)); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	if r.BodyPreview != "" {
		if _, err := fmt.Fprintln(t.w, r.BodyPreview); err != nil {
			return fmt.Errorf("write status preview: %w", err)
		}
	}
	return nil
}

// Jobs writes the job table, or the empty or failed message.
func (t *Text) Jobs(v JobsView) error {
	switch {
	case v.Failed():
		_, err := fmt.Fprintln(t.w, LoadFailedMessage)
		return wrapWrite(err)
	case len(v.Jobs) == 0:
		_, err := fmt.Fprintln(t.w, NoJobsMessage)
		return wrapWrite(err)
	}

	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tCREATED"); err != nil {
		return wrapWrite(err)
	}
	for _, j := range v.Jobs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", j.ID, j.JobType, j.Status, j.CreatedAt); err != nil {
			return wrapWrite(err)
		}
		if j.ErrorMessage != "" {
			if _, err := fmt.Fprintf(tw, "\t\terror: %s\t\n", j.ErrorMessage); err != nil {
				return wrapWrite(err)
			}
		}
	}
	return wrapWrite(tw.Flush())
}

// Submission writes the outcome of a submit action.
func (t *Text) Submission(o jobs.Outcome) error {
	if o.Submitted() {
		if _, err := fmt.Fprintf(t.w, "Submitted (HTTP %d)\n", o.StatusCode); err != nil {
			return wrapWrite(err)
		}
	}
	_, err := fmt.Fprintln(t.w, SubmissionText(o, t.previewLen))
	return wrapWrite(err)
}

func wrapWrite(err error) error {
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
