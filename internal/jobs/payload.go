package jobs

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PayloadKind tells a parsed payload from an invalid one.
type PayloadKind int

// Payload variants.
const (
	PayloadInvalid PayloadKind = iota
	PayloadParsed
)

// Payload is the result of parsing user-entered payload text. Exactly one of
// Value (Parsed) or Err (Invalid) is meaningful.
type Payload struct {
	Kind  PayloadKind
	Value json.RawMessage
	Err   error
}

// Parsed reports whether the text was valid JSON.
func (p Payload) Parsed() bool {
	return p.Kind == PayloadParsed
}

// ParsePayload checks that text is a single well-formed JSON value. Any JSON
// value is accepted, including scalars. The value is returned compacted.
func ParsePayload(text string) Payload {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return Payload{Kind: PayloadInvalid, Err: fmt.Errorf("%w: %w", ErrInvalidPayload, err)}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return Payload{Kind: PayloadInvalid, Err: fmt.Errorf("%w: %w", ErrInvalidPayload, err)}
	}
	return Payload{Kind: PayloadParsed, Value: json.RawMessage(buf.Bytes())}
}
