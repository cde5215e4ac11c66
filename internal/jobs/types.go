package jobs

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Error taxonomy for job requests.
var (
	// ErrTransport means the request never reached or returned from the server.
	ErrTransport = errors.New("transport error")
	// ErrHTTPStatus means the server answered with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	// ErrInvalidPayload means the user-supplied payload is not valid JSON.
	ErrInvalidPayload = errors.New("invalid JSON payload")
	// ErrDecode means the response body could not be decoded.
	ErrDecode = errors.New("decode response")
)

// Opaque is a server-defined value kept verbatim. Strings decode as-is;
// numbers, booleans and objects keep their JSON text; null becomes empty.
type Opaque string

// UnmarshalJSON implements json.Unmarshaler.
func (o *Opaque) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*o = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err //nolint:wrapcheck
		}
		*o = Opaque(s)
	default:
		*o = Opaque(trimmed)
	}
	return nil
}

// String returns the value as text.
func (o Opaque) String() string {
	return string(o)
}

// Job is one snapshot from GET /jobs. Provider and ErrorMessage are only
// filled by backends that report them.
type Job struct {
	ID           Opaque `json:"id"`
	JobType      Opaque `json:"job_type"`
	Status       Opaque `json:"status"`
	CreatedAt    Opaque `json:"created_at"`
	Provider     Opaque `json:"provider,omitempty"`
	ErrorMessage Opaque `json:"error_message,omitempty"`
}

// APIKeyHeader carries the caller's opaque credential.
const APIKeyHeader = "X-API-Key"
