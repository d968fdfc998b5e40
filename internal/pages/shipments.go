package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/platform/httpc"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// ErrBusy means a mutation for the same shipment is already in flight.
var ErrBusy = errors.New("shipment action already in flight")

// ErrStale means the shipment was resolved by another actor; the list must
// be refreshed before further actions.
var ErrStale = errors.New("shipment already resolved elsewhere; refresh the list")

// ErrNoSelection means no shipment detail is open.
var ErrNoSelection = errors.New("no shipment selected")

// ShipmentAPI is the gateway slice the shipments page depends on.
type ShipmentAPI interface {
	Shipments(ctx context.Context, branchID string) ([]gateway.Shipment, error)
	AcceptShipment(ctx context.Context, id string) (gateway.Shipment, error)
	RejectShipment(ctx context.Context, id, reason string) error
	CancelShipment(ctx context.Context, id string) error
	RetryShipment(ctx context.Context, id string) error
}

// ShipmentsPage drives the accept/reject flow. The client never computes a
// shipment's next state; every transition is requested from the backend and
// reconciled by a full list refetch.
type ShipmentsPage struct {
	api    ShipmentAPI
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
	user   session.User

	Shipments []gateway.Shipment

	selected string
	busy     map[string]bool
	stale    map[string]bool
}

// NewShipmentsPage builds the page for the signed-in user.
func NewShipmentsPage(api ShipmentAPI, opts Options) *ShipmentsPage {
	return &ShipmentsPage{
		api:    api,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.logger(),
		user:   opts.User,
		busy:   make(map[string]bool),
		stale:  make(map[string]bool),
	}
}

// Load refetches the shipment list, replacing local state wholesale and
// clearing stale markers. Failures empty the list and are returned once.
func (p *ShipmentsPage) Load(ctx context.Context) error {
	scope := p.user.Scope()
	items, err := loadCached(ctx, p.cache, cache.Key("shipments", scope), p.ttl, func(ctx context.Context) ([]gateway.Shipment, error) {
		return p.api.Shipments(ctx, scope)
	})
	if err != nil {
		p.logger.Error("shipments load failed", slog.Any("error", err))
		p.Shipments = nil
		return err
	}
	p.Shipments = items
	p.stale = make(map[string]bool)
	return nil
}

// Pending filters the loaded list down to actionable shipments.
func (p *ShipmentsPage) Pending() []gateway.Shipment {
	var out []gateway.Shipment
	for _, s := range p.Shipments {
		if s.Status == gateway.ShipmentPending {
			out = append(out, s)
		}
	}
	return out
}

// Actionable reports whether accept/reject may be offered for a status.
// Unknown statuses are inert, display-only.
func Actionable(status string) bool {
	return status == gateway.ShipmentPending
}

// Select opens the detail view for a loaded shipment.
func (p *ShipmentsPage) Select(id string) error {
	for _, s := range p.Shipments {
		if s.ID == id {
			p.selected = id
			return nil
		}
	}
	return fmt.Errorf("shipment %s is not in the loaded list", id)
}

// Selected returns the open detail, if any.
func (p *ShipmentsPage) Selected() (gateway.Shipment, bool) {
	if p.selected == "" {
		return gateway.Shipment{}, false
	}
	for _, s := range p.Shipments {
		if s.ID == p.selected {
			return s, true
		}
	}
	return gateway.Shipment{}, false
}

// CloseDetail discards the detail view.
func (p *ShipmentsPage) CloseDetail() {
	p.selected = ""
}

// Accept requests pending→accepted for the selected shipment. A 409 means
// another actor already resolved it: the detail closes, optimistic state is
// dropped and the next Load is the reconciliation point.
func (p *ShipmentsPage) Accept(ctx context.Context) error {
	sel, ok := p.Selected()
	if !ok {
		return ErrNoSelection
	}
	return p.transition(ctx, sel.ID, func(ctx context.Context, id string) error {
		_, err := p.api.AcceptShipment(ctx, id)
		return err
	})
}

// Reject requests pending→rejected for the selected shipment. An empty
// trimmed reason fails locally without a network call.
func (p *ShipmentsPage) Reject(ctx context.Context, reason string) error {
	sel, ok := p.Selected()
	if !ok {
		return ErrNoSelection
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: rejection reason is required", gateway.ErrValidation)
	}
	return p.transition(ctx, sel.ID, func(ctx context.Context, id string) error {
		return p.api.RejectShipment(ctx, id, reason)
	})
}

// Cancel requests the cancelled status for a listed shipment.
func (p *ShipmentsPage) Cancel(ctx context.Context, id string) error {
	return p.transition(ctx, id, p.api.CancelShipment)
}

// Retry puts a resolved shipment back to pending.
func (p *ShipmentsPage) Retry(ctx context.Context, id string) error {
	return p.transition(ctx, id, p.api.RetryShipment)
}

// transition issues one status-transition request with the page's guards:
// one in-flight mutation per shipment, no actions on stale shipments, cache
// invalidation plus full refetch on success.
func (p *ShipmentsPage) transition(ctx context.Context, id string, call func(context.Context, string) error) error {
	if p.stale[id] {
		return ErrStale
	}
	if p.busy[id] {
		return ErrBusy
	}
	p.busy[id] = true
	defer delete(p.busy, id)

	if err := call(ctx, id); err != nil {
		if httpc.IsConflict(err) {
			p.logger.Warn("shipment already resolved", slog.String("shipment", id))
			p.stale[id] = true
			if p.selected == id {
				p.CloseDetail()
			}
			return err
		}
		return err
	}

	if p.cache != nil {
		_ = p.cache.Invalidate(ctx, cache.Affected("shipments", p.user.Scope())...)
	}
	if p.selected == id {
		p.CloseDetail()
	}
	return p.Load(ctx)
}
