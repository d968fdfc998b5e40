package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// normalizeEnvelope strips the backend's response envelope from a collection
// body.
//
// Precondition: raw is a JSON array, a JSON object, or an object wrapping the
// payload under a "data" member, possibly twice ({"data":{"data":[...]}} is
// the legacy shape of the dispensing, shipment and calendar endpoints).
//
// Postcondition: the returned message is the innermost payload with every
// "data" wrapper removed. A body without a "data" member passes through
// unchanged, so the unwrap is idempotent.
func normalizeEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("gateway: malformed envelope: %w", err)
	}
	if env.Data == nil {
		return trimmed, nil
	}
	return normalizeEnvelope(env.Data)
}
