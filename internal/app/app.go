// Package app initializes and holds long-lived application services, acting as
// a dependency injection container for the CLI commands.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/clock"
	"github.com/JakeFAU/quantum-job-console/internal/config"
	"github.com/JakeFAU/quantum-job-console/internal/console"
	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/jobs"
	"github.com/JakeFAU/quantum-job-console/internal/metrics"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
	"github.com/JakeFAU/quantum-job-console/internal/render"
	"github.com/JakeFAU/quantum-job-console/internal/transport"
)

// App holds the shared services built from one Config.
type App struct {
	cfg     config.Config
	base    endpoint.Config
	logger  *zap.Logger
	client  *http.Client
	console *console.Console
	page    *render.HTML
}

// New wires the API clients, the console and the page renderer.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()

	base := cfg.Endpoint()
	client := transport.NewClient(transport.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.RequestTimeout(),
	})
	fetcher := probe.NewCollyFetcher(probe.CollyConfig{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.RequestTimeout(),
		Transport: client.Transport,
	})

	prober := probe.New(base, fetcher, clock.New(), cfg.Preview.MaxLength, logger.Named("probe"))
	submitter := jobs.NewSubmitter(base, client, logger.Named("submit"))
	lister := jobs.NewLister(base, client, logger.Named("jobs"))

	page, err := render.NewHTML(cfg.Preview.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("init page renderer: %w", err)
	}

	logger.Info("application services initialized",
		zap.String("api_base", base.Base),
		zap.Strings("health_paths", cfg.API.HealthPaths),
		zap.Duration("request_timeout", cfg.RequestTimeout()),
	)

	return &App{
		cfg:     cfg,
		base:    base,
		logger:  logger,
		client:  client,
		console: console.New(base, prober, submitter, lister, cfg.API.HealthPaths, logger.Named("console")),
		page:    page,
	}, nil
}

// GetConfig returns the configuration the App was built from.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetLogger returns the shared zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetConsole returns the job console.
func (a *App) GetConsole() *console.Console {
	return a.console
}

// NewServer builds the HTTP console server.
func (a *App) NewServer() *console.Server {
	return console.NewServer(a.console, a.page, a.logger.Named("http"))
}

// Close releases idle connections and flushes the logger.
func (a *App) Close() {
	a.client.CloseIdleConnections()
	// Sync fails on stderr for some terminals; nothing useful can be done then.
	_ = a.logger.Sync() //nolint:errcheck
}
