package pages

import (
	"context"
	"log/slog"
	"time"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// TransferAPI is the gateway slice the transfers page depends on.
type TransferAPI interface {
	Transfers(ctx context.Context, branchID string) ([]gateway.Transfer, error)
	CreateTransfers(ctx context.Context, transfers []gateway.TransferForm) error
}

// TransferGroup aggregates movements of one medicine for display.
type TransferGroup struct {
	MedicineName string
	Total        int
	Entries      []gateway.Transfer
}

// TransfersPage lists inter-branch movements grouped by medicine name.
type TransfersPage struct {
	api    TransferAPI
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
	user   session.User

	Transfers []gateway.Transfer
}

// NewTransfersPage builds the page for the signed-in user.
func NewTransfersPage(api TransferAPI, opts Options) *TransfersPage {
	return &TransfersPage{
		api:    api,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.logger(),
		user:   opts.User,
	}
}

// Load refetches the movement list.
func (p *TransfersPage) Load(ctx context.Context) error {
	scope := p.user.Scope()
	items, err := loadCached(ctx, p.cache, cache.Key("transfers", scope), p.ttl, func(ctx context.Context) ([]gateway.Transfer, error) {
		return p.api.Transfers(ctx, scope)
	})
	if err != nil {
		p.logger.Error("transfers load failed", slog.Any("error", err))
		p.Transfers = nil
		return err
	}
	p.Transfers = items
	return nil
}

// Groups folds the loaded movements by medicine name, collation-sorted, each
// group totalling its quantities.
func (p *TransfersPage) Groups() []TransferGroup {
	index := make(map[string]int)
	var groups []TransferGroup
	for _, t := range p.Transfers {
		i, ok := index[t.MedicineName]
		if !ok {
			i = len(groups)
			index[t.MedicineName] = i
			groups = append(groups, TransferGroup{MedicineName: t.MedicineName})
		}
		groups[i].Entries = append(groups[i].Entries, t)
		groups[i].Total += int(t.Quantity)
	}
	sortByName(groups, func(g TransferGroup) string { return g.MedicineName })
	return groups
}

// Create submits a batch of movements, invalidates the affected resources
// and refetches.
func (p *TransfersPage) Create(ctx context.Context, transfers []gateway.TransferForm) error {
	if err := p.api.CreateTransfers(ctx, transfers); err != nil {
		return err
	}
	if p.cache != nil {
		_ = p.cache.Invalidate(ctx, cache.Affected("transfers", p.user.Scope())...)
	}
	return p.Load(ctx)
}
