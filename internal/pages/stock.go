package pages

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// StockAPI is the gateway slice the stock page depends on.
type StockAPI interface {
	Medicines(ctx context.Context, branchID string) ([]gateway.Medicine, error)
	MedicalDevices(ctx context.Context, branchID string) ([]gateway.MedicalDevice, error)
	Categories(ctx context.Context, categoryType string) ([]gateway.Category, error)
}

// StockPage shows medicines, medical devices and their categories for the
// session's branch scope.
type StockPage struct {
	api    StockAPI
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
	user   session.User

	Medicines  []gateway.Medicine
	Devices    []gateway.MedicalDevice
	Categories []gateway.Category
}

// NewStockPage builds the page for the signed-in user.
func NewStockPage(api StockAPI, opts Options) *StockPage {
	return &StockPage{
		api:    api,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.logger(),
		user:   opts.User,
	}
}

// Load fetches the three lists concurrently and joins all-or-nothing: one
// failure empties every list so a render shows the empty state instead of a
// partial page. The error is returned once for surfacing.
func (p *StockPage) Load(ctx context.Context) error {
	scope := p.user.Scope()
	var (
		meds []gateway.Medicine
		devs []gateway.MedicalDevice
		cats []gateway.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meds, err = loadCached(gctx, p.cache, cache.Key("medicines", scope), p.ttl, func(ctx context.Context) ([]gateway.Medicine, error) {
			return p.api.Medicines(ctx, scope)
		})
		return err
	})
	g.Go(func() error {
		var err error
		devs, err = loadCached(gctx, p.cache, cache.Key("medical_devices", scope), p.ttl, func(ctx context.Context) ([]gateway.MedicalDevice, error) {
			return p.api.MedicalDevices(ctx, scope)
		})
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = loadCached(gctx, p.cache, cache.Key("categories", ""), p.ttl, func(ctx context.Context) ([]gateway.Category, error) {
			return p.api.Categories(ctx, "")
		})
		return err
	})

	if err := g.Wait(); err != nil {
		p.logger.Error("stock load failed", slog.Any("error", err))
		p.Medicines, p.Devices, p.Categories = nil, nil, nil
		return err
	}

	sortByName(meds, func(m gateway.Medicine) string { return m.Name })
	sortByName(devs, func(d gateway.MedicalDevice) string { return d.Name })
	sortByName(cats, func(c gateway.Category) string { return c.Name })
	p.Medicines, p.Devices, p.Categories = meds, devs, cats
	return nil
}

// TotalStock sums the quantity on hand across medicines and devices.
func (p *StockPage) TotalStock() int {
	return sumQuantities(p.Medicines, func(m gateway.Medicine) gateway.Quantity { return m.Quantity }) +
		sumQuantities(p.Devices, func(d gateway.MedicalDevice) gateway.Quantity { return d.Quantity })
}

// CategoryName resolves a category id for display; unknown ids render as the
// id itself.
func (p *StockPage) CategoryName(id string) string {
	for _, c := range p.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
