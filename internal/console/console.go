// Package console orchestrates the job console: probe and list at startup,
// submit then refresh on demand. Every operation returns a fresh State; the
// render package is the only consumer of it.
package console

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/logging"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
	"github.com/JakeFAU/quantum-job-console/internal/render"
)

// Prober runs the health probe.
type Prober interface {
	Probe(ctx context.Context, paths []string) probe.Result
}

// Submitter sends a job.
type Submitter interface {
	Submit(ctx context.Context, apiKey, jobType, payloadText string) jobs.Outcome
}

// Lister loads the job list.
type Lister interface {
	LoadJobs(ctx context.Context) ([]jobs.Job, error)
}

// Form is one submit action as entered by the user.
type Form struct {
	APIKey  string
	JobType string
	Payload string
}

// State is the full presentation state after an operation.
type State struct {
	Base       string
	Status     probe.Result
	Jobs       render.JobsView
	Submission *jobs.Outcome
	// Refreshed is set when a submission triggered a job list reload.
	Refreshed bool
	Form      Form
}

// Page converts the state into the page the HTML renderer draws. The API key
// is never echoed back.
func (s State) Page() render.Page {
	return render.Page{
		Base:       s.Base,
		Status:     s.Status,
		Jobs:       s.Jobs,
		Submission: s.Submission,
		JobType:    s.Form.JobType,
		Payload:    s.Form.Payload,
	}
}

// Console ties the API clients together.
type Console struct {
	base      endpoint.Config
	prober    Prober
	submitter Submitter
	lister    Lister
	paths     []string
	logger    *zap.Logger
}

// New constructs a Console. Empty paths select probe.DefaultPaths.
func New(base endpoint.Config, p Prober, s Submitter, l Lister, paths []string, logger *zap.Logger) *Console {
	if len(paths) == 0 {
		paths = probe.DefaultPaths
	}
	return &Console{
		base:      base,
		prober:    p,
		submitter: s,
		lister:    l,
		paths:     paths,
		logger:    logging.OrNop(logger),
	}
}

// Startup probes the API and then loads the job list.
func (c *Console) Startup(ctx context.Context) State {
	return State{
		Base:   c.base.Base,
		Status: c.Status(ctx),
		Jobs:   c.Jobs(ctx),
	}
}

// Status runs the health probe over the configured candidates.
func (c *Console) Status(ctx context.Context) probe.Result {
	result := c.prober.Probe(ctx, c.paths)
	c.logger.Info("api status checked",
		zap.Bool("ok", result.OK),
		zap.String("url", result.URLTried),
		zap.Int("status", result.StatusCode),
	)
	return result
}

// Jobs loads the job list.
func (c *Console) Jobs(ctx context.Context) render.JobsView {
	return render.NewJobsView(c.lister.LoadJobs(ctx))
}

// Submit sends form and returns prev updated with the outcome. The job list is
// reloaded only when the submission completed, whatever its HTTP status.
func (c *Console) Submit(ctx context.Context, prev State, form Form) State {
	next := prev
	next.Base = c.base.Base
	next.Form = Form{JobType: form.JobType, Payload: form.Payload}
	next.Refreshed = false

	outcome := c.submitter.Submit(ctx, form.APIKey, next.Form.JobType, form.Payload)
	next.Submission = &outcome
	if outcome.Submitted() {
		next.Jobs = c.Jobs(ctx)
		next.Refreshed = true
	}
	return next
}
