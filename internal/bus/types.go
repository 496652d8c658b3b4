package bus

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// CompletionFunc signals that a message has been fully handled. A nil error
// means success; a non-nil error replaces the generic error report.
type CompletionFunc func(err error)

// InboundMessage is one input to the node. Done may be nil when the producer
// does not track completion.
type InboundMessage struct {
	ID      string
	Payload json.RawMessage
	Done    CompletionFunc
}

// OutboundMessage carries a device status object back to the host, tagged
// with the inbound message that produced it.
type OutboundMessage struct {
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewInbound assigns a message ID and makes the completion signal idempotent:
// handler chains may reference it from more than one call site, but only the
// first call is delivered.
func NewInbound(payload json.RawMessage, done CompletionFunc) InboundMessage {
	return InboundMessage{
		ID:      uuid.NewString(),
		Payload: payload,
		Done:    Idempotent(done),
	}
}

// RawPayload converts one host input into a JSON payload. Non-JSON input is
// wrapped as a JSON string so bare shorthand words are accepted; empty input
// is rejected.
func RawPayload(data []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false
	}
	payload := make(json.RawMessage, len(trimmed))
	copy(payload, trimmed)
	if json.Valid(payload) {
		return payload, true
	}
	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return nil, false
	}
	return quoted, true
}

// Idempotent wraps a completion func so every call after the first is a
// no-op. A nil func stays nil.
func Idempotent(done CompletionFunc) CompletionFunc {
	if done == nil {
		return nil
	}
	var once sync.Once
	return func(err error) {
		once.Do(func() { done(err) })
	}
}
