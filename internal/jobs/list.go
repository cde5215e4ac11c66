package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/logging"
	"github.com/JakeFAU/quantum-job-console/internal/metrics"
)

// ListPath is the job collection endpoint.
const ListPath = "/jobs"

// Job list load results used as metric labels.
const (
	listOK     = "ok"
	listEmpty  = "empty"
	listFailed = "failed"
)

// listEnvelope is the paged shape some backends return instead of a bare array.
type listEnvelope struct {
	Items      *[]Job `json:"items"`
	NextCursor Opaque `json:"next_cursor"`
}

// Lister fetches the job collection.
type Lister struct {
	base   endpoint.Config
	client *http.Client
	logger *zap.Logger
}

// NewLister constructs a Lister. A nil client selects http.DefaultClient.
func NewLister(base endpoint.Config, client *http.Client, logger *zap.Logger) *Lister {
	if client == nil {
		client = http.DefaultClient
	}
	return &Lister{base: base, client: client, logger: logging.OrNop(logger)}
}

// LoadJobs returns the jobs in server order. An empty, non-nil slice means the
// server has no jobs; an error means the fetch itself failed.
func (l *Lister) LoadJobs(ctx context.Context) ([]Job, error) {
	list, err := l.fetch(ctx)
	if err != nil {
		l.logger.Warn("job list load failed", zap.Error(err))
		metrics.ObserveJobListLoad(listFailed)
		return nil, err
	}
	if len(list) == 0 {
		metrics.ObserveJobListLoad(listEmpty)
	} else {
		metrics.ObserveJobListLoad(listOK)
	}
	l.logger.Debug("job list loaded", zap.Int("count", len(list)))
	return list, nil
}

func (l *Lister) fetch(ctx context.Context) ([]Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.base.URL(ListPath), nil)
	if err != nil {
		return nil, fmt.Errorf("build job list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}
	return DecodeList(raw)
}

// DecodeList accepts a JSON array of jobs or an object with an "items" array.
func DecodeList(raw []byte) ([]Job, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecode)
	}
	switch trimmed[0] {
	case '[':
		list := []Job{}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return list, nil
	case '{':
		var env listEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		// A missing or null items key is a malformed envelope.
		if env.Items == nil {
			return nil, fmt.Errorf("%w: object without items", ErrDecode)
		}
		return *env.Items, nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON array", ErrDecode)
	}
}
