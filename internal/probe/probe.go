package probe

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/clock"
	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/logging"
	"github.com/JakeFAU/quantum-job-console/internal/metrics"
	"github.com/JakeFAU/quantum-job-console/internal/preview"
)

// Response is the raw reply to a probe GET.
type Response struct {
	StatusCode int
	Body       []byte
}

// Fetcher performs a single uncached GET and returns the full body.
type Fetcher interface {
	Get(ctx context.Context, url string) (Response, error)
}

// Prober runs the candidate chain against one API base.
type Prober struct {
	base       endpoint.Config
	fetcher    Fetcher
	clock      clock.Clock
	previewLen int
	logger     *zap.Logger
}

// New constructs a Prober. A nil clock selects the system clock.
func New(base endpoint.Config, fetcher Fetcher, clk clock.Clock, previewLen int, logger *zap.Logger) *Prober {
	if clk == nil {
		clk = clock.New()
	}
	return &Prober{
		base:       base,
		fetcher:    fetcher,
		clock:      clk,
		previewLen: previewLen,
		logger:     logging.OrNop(logger),
	}
}

// Probe tries each path in order and stops at the first 2xx reply. If all
// paths fail, the last attempt is returned.
func (p *Prober) Probe(ctx context.Context, paths []string) Result {
	result, tried := FirstSuccess(paths, func(path string) Result {
		return p.attempt(ctx, path)
	}, func(r Result) bool {
		return r.OK
	})
	if !tried {
		return Result{Error: ErrNoCandidates.Error(), CheckedAt: p.clock.Now()}
	}
	return result
}

func (p *Prober) attempt(ctx context.Context, path string) Result {
	target := p.base.URL(path)
	start := p.clock.Now()
	resp, err := p.fetcher.Get(ctx, target)
	elapsed := p.clock.Now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	if err != nil {
		metrics.ObserveProbeAttempt(path, metrics.ProbeTransportError)
		p.logger.Debug("probe candidate unreachable", zap.String("url", target), zap.Error(err))
		return Result{
			URLTried:  target,
			Error:     err.Error(),
			CheckedAt: start,
			Duration:  elapsed,
		}
	}

	res := Result{
		OK:          isSuccess(resp.StatusCode),
		URLTried:    target,
		StatusCode:  resp.StatusCode,
		BodyPreview: preview.Preview(string(resp.Body), p.previewLen),
		CheckedAt:   start,
		Duration:    elapsed,
	}
	label := metrics.ProbeOK
	if !res.OK {
		label = metrics.ProbeHTTPError
	}
	metrics.ObserveProbeAttempt(path, label)
	p.logger.Debug("probe candidate answered",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed),
	)
	return res
}
