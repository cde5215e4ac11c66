package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// Probe request headers.
const (
	acceptHeader       = "application/json, text/plain, */*"
	cacheControlHeader = "no-cache"
)

// CollyConfig controls the collector used for probe requests.
type CollyConfig struct {
	UserAgent string
	// Timeout bounds one GET. Zero disables the timeout.
	Timeout time.Duration
	// Transport replaces the collector's RoundTripper when set.
	Transport http.RoundTripper
}

// CollyFetcher implements Fetcher with a gocolly collector. robots.txt is
// ignored, revisits are allowed, and non-2xx replies are delivered as
// responses instead of errors so the caller can classify them.
type CollyFetcher struct {
	baseCollector *colly.Collector
}

type collectorHooks interface {
	OnRequest(colly.RequestCallback)
	OnResponse(colly.ResponseCallback)
	OnError(colly.ErrorCallback)
}

// NewCollyFetcher builds a CollyFetcher.
func NewCollyFetcher(cfg CollyConfig) *CollyFetcher {
	c := colly.NewCollector(
		colly.Async(false),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.ParseHTTPErrorResponse(),
		colly.MaxBodySize(0),
	)
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	if cfg.Transport != nil {
		c.WithTransport(cfg.Transport)
	}
	// colly ships a 10s client timeout; zero must mean "wait forever".
	c.SetRequestTimeout(cfg.Timeout)
	return &CollyFetcher{baseCollector: c}
}

// Get issues one GET and returns the status and full body.
func (f *CollyFetcher) Get(ctx context.Context, url string) (Response, error) {
	var (
		result   Response
		fetchErr error
	)
	collector := f.baseCollector.Clone()
	configureHooks(collector, &result, &fetchErr)
	if err := runCollector(ctx, collector, url, &fetchErr); err != nil {
		return Response{}, err
	}
	return result, nil
}

func configureHooks(hooks collectorHooks, result *Response, fetchErr *error) {
	hooks.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", acceptHeader)
		r.Headers.Set("Cache-Control", cacheControlHeader)
		r.Headers.Set("Pragma", cacheControlHeader)
	})

	hooks.OnResponse(func(r *colly.Response) {
		*result = Response{
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
	})

	hooks.OnError(func(_ *colly.Response, err error) {
		*fetchErr = err
	})
}

func runCollector(ctx context.Context, collector *colly.Collector, url string, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("probe canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("probe visit failed: %w", err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("probe response failed: %w", *fetchErr)
		}
		return nil
	}
}
