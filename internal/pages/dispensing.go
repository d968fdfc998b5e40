package pages

import (
	"context"
	"log/slog"
	"time"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// DispensingAPI is the gateway slice the dispensing page depends on.
type DispensingAPI interface {
	DispensingRecords(ctx context.Context, branchID string) ([]gateway.DispensingRecord, error)
	CreateDispensing(ctx context.Context, form gateway.DispenseForm) error
	DispensingCalendar(ctx context.Context, branchID string, month, year int) (map[string][]gateway.CalendarEntry, error)
}

// DispensingPage lists issuances to patients and drives the create flow.
type DispensingPage struct {
	api    DispensingAPI
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
	user   session.User

	Records []gateway.DispensingRecord
}

// NewDispensingPage builds the page for the signed-in user.
func NewDispensingPage(api DispensingAPI, opts Options) *DispensingPage {
	return &DispensingPage{
		api:    api,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.logger(),
		user:   opts.User,
	}
}

// Load refetches the record list.
func (p *DispensingPage) Load(ctx context.Context) error {
	scope := p.user.Scope()
	items, err := loadCached(ctx, p.cache, cache.Key("dispensing_records", scope), p.ttl, func(ctx context.Context) ([]gateway.DispensingRecord, error) {
		return p.api.DispensingRecords(ctx, scope)
	})
	if err != nil {
		p.logger.Error("dispensing load failed", slog.Any("error", err))
		p.Records = nil
		return err
	}
	p.Records = items
	return nil
}

// TotalDispensed sums dispensed quantities across all loaded records.
func (p *DispensingPage) TotalDispensed() int {
	total := 0
	for _, r := range p.Records {
		total += sumQuantities(r.Medicines, func(i gateway.DispensedItem) gateway.Quantity { return i.Quantity })
		total += sumQuantities(r.MedicalDevices, func(i gateway.DispensedItem) gateway.Quantity { return i.Quantity })
	}
	return total
}

// Dispense records an issuance, invalidates the stock it decremented and
// refetches.
func (p *DispensingPage) Dispense(ctx context.Context, form gateway.DispenseForm) error {
	if form.BranchID == "" {
		form.BranchID = p.user.BranchID
	}
	if err := p.api.CreateDispensing(ctx, form); err != nil {
		return err
	}
	if p.cache != nil {
		_ = p.cache.Invalidate(ctx, cache.Affected("dispensing_records", form.BranchID)...)
	}
	return p.Load(ctx)
}

// Calendar returns the month view, keyed by day of month.
func (p *DispensingPage) Calendar(ctx context.Context, month, year int) (map[string][]gateway.CalendarEntry, error) {
	return p.api.DispensingCalendar(ctx, p.user.Scope(), month, year)
}
