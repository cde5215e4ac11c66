// Package poller reloads the job list on a fixed pace.
package poller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/JakeFAU/quantum-job-console/internal/logging"
	"github.com/JakeFAU/quantum-job-console/internal/render"
)

// DefaultInterval is used when Config.Interval is not positive.
const DefaultInterval = 5 * time.Second

// LoadFunc loads one snapshot of the job list.
type LoadFunc func(ctx context.Context) render.JobsView

// SinkFunc receives each snapshot. Returning an error stops the poller.
type SinkFunc func(render.JobsView) error

// Config holds poller configuration.
type Config struct {
	Interval time.Duration
	// MaxRounds stops the poller after that many loads. Zero means unbounded.
	MaxRounds int
}

// Poller runs load then sink in a loop, at most once per interval.
type Poller struct {
	limiter   *rate.Limiter
	load      LoadFunc
	sink      SinkFunc
	maxRounds int
	logger    *zap.Logger
}

// New creates a Poller.
func New(cfg Config, load LoadFunc, sink SinkFunc, logger *zap.Logger) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		load:      load,
		sink:      sink,
		maxRounds: cfg.MaxRounds,
		logger:    logging.OrNop(logger),
	}
}

// Run loads immediately and then once per interval until ctx is done, the
// sink fails, or MaxRounds is reached. A load never overlaps the previous one.
// Cancellation is not reported as an error.
func (p *Poller) Run(ctx context.Context) error {
	for round := 1; p.maxRounds == 0 || round <= p.maxRounds; round++ {
		if err := p.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("poll wait: %w", err)
		}
		view := p.load(ctx)
		if ctx.Err() != nil {
			return nil
		}
		p.logger.Debug("job list polled", zap.Int("round", round), zap.Int("jobs", len(view.Jobs)), zap.Bool("failed", view.Failed()))
		if err := p.sink(view); err != nil {
			return fmt.Errorf("poll sink: %w", err)
		}
	}
	return nil
}
