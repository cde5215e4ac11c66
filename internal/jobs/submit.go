package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/logging"
	"github.com/JakeFAU/quantum-job-console/internal/metrics"
)

// SubmitPath is the job-creation endpoint.
const SubmitPath = "/submit-job"

// GenericFailureMessage is shown for every transport or decode failure. The
// underlying error is logged, never displayed.
const GenericFailureMessage = "Submission failed. Check the API and try again."

// OutcomeKind classifies a submission.
type OutcomeKind string

// Submission outcomes.
const (
	OutcomeSubmitted      OutcomeKind = "submitted"
	OutcomeInvalidPayload OutcomeKind = "invalid_payload"
	OutcomeFailed         OutcomeKind = "failed"
)

// Outcome is the terminal state of one submit action.
//
// Submitted carries the server's JSON reply verbatim and the HTTP status it
// came with; the status is not used to judge success. InvalidPayload and
// Failed carry a display Message and the internal Err.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Response   json.RawMessage
	Message    string
	Err        error
}

// Submitted reports whether the request completed at the transport level.
func (o Outcome) Submitted() bool {
	return o.Kind == OutcomeSubmitted
}

type submitRequest struct {
	JobType string          `json:"job_type"`
	Payload json.RawMessage `json:"payload"`
}

// Submitter sends job-creation requests.
type Submitter struct {
	base   endpoint.Config
	client *http.Client
	logger *zap.Logger
}

// NewSubmitter constructs a Submitter. A nil client selects http.DefaultClient.
func NewSubmitter(base endpoint.Config, client *http.Client, logger *zap.Logger) *Submitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Submitter{base: base, client: client, logger: logging.OrNop(logger)}
}

// Submit validates payloadText and posts it. Malformed JSON returns an
// InvalidPayload outcome without touching the network. An empty apiKey is
// still forwarded; the server decides whether it is acceptable.
func (s *Submitter) Submit(ctx context.Context, apiKey, jobType, payloadText string) Outcome {
	apiKey = strings.TrimSpace(apiKey)

	payload := ParsePayload(payloadText)
	if !payload.Parsed() {
		metrics.ObserveSubmission(string(OutcomeInvalidPayload))
		return Outcome{
			Kind:    OutcomeInvalidPayload,
			Message: "Payload must be valid JSON.",
			Err:     payload.Err,
		}
	}

	status, body, err := s.post(ctx, apiKey, submitRequest{JobType: jobType, Payload: payload.Value})
	if err != nil {
		s.logger.Warn("job submission failed", zap.String("job_type", jobType), zap.Error(err))
		metrics.ObserveSubmission(string(OutcomeFailed))
		return Outcome{Kind: OutcomeFailed, StatusCode: status, Message: GenericFailureMessage, Err: err}
	}

	s.logger.Info("job submitted", zap.String("job_type", jobType), zap.Int("status", status))
	metrics.ObserveSubmission(string(OutcomeSubmitted))
	return Outcome{Kind: OutcomeSubmitted, StatusCode: status, Response: body}
}

func (s *Submitter) post(ctx context.Context, apiKey string, in submitRequest) (int, json.RawMessage, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return 0, nil, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base.URL(SubmitPath), bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return resp.StatusCode, nil, fmt.Errorf("%w: submission reply is not JSON (status %d)", ErrDecode, resp.StatusCode)
	}
	return resp.StatusCode, json.RawMessage(raw), nil
}
