// Package gateway provides a typed client for every resource exposed by the
// warehouse backend. Each method maps to one (resource, verb) pair with a
// fixed path template; the backend owns all business rules, the gateway only
// shapes requests and decodes responses.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/pharmadesk/pharmadesk/internal/platform/httpc"
)

// ErrValidation marks input rejected locally, before any network call.
var ErrValidation = errors.New("validation failed")

// Gateway is the single entry point to the backend API.
type Gateway struct {
	hc       *httpc.Client
	validate *validator.Validate
}

// New builds a Gateway over the given HTTP client.
func New(hc *httpc.Client) *Gateway {
	return &Gateway{
		hc:       hc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// check validates a request payload; failures never reach the wire.
func (g *Gateway) check(payload any) error {
	if err := g.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// branchScope builds the optional branch_id query. An empty branch id omits
// the parameter entirely, requesting the central-warehouse view.
func branchScope(branchID string) url.Values {
	if branchID == "" {
		return nil
	}
	q := url.Values{}
	q.Set("branch_id", branchID)
	return q
}

// list fetches a collection endpoint, normalizing any response envelope
// before decoding into out.
func (g *Gateway) list(ctx context.Context, path string, query url.Values, out any) error {
	raw, _, err := g.hc.DoRaw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	flat, err := normalizeEnvelope(raw)
	if err != nil {
		return err
	}
	if len(flat) == 0 || string(flat) == "null" {
		return nil
	}
	if err := json.Unmarshal(flat, out); err != nil {
		return fmt.Errorf("gateway: decode %s: %w", path, err)
	}
	return nil
}
