package pages

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
)

// ArrivalAPI is the gateway slice the arrivals page depends on.
type ArrivalAPI interface {
	Arrivals(ctx context.Context) ([]gateway.Arrival, error)
	DeviceArrivals(ctx context.Context) ([]gateway.DeviceArrival, error)
	CreateArrivals(ctx context.Context, arrivals []gateway.ArrivalForm) error
	CreateDeviceArrivals(ctx context.Context, arrivals []gateway.DeviceArrivalForm) error
}

// ArrivalsPage shows central-warehouse receipts of medicines and devices.
type ArrivalsPage struct {
	api    ArrivalAPI
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger

	Arrivals       []gateway.Arrival
	DeviceArrivals []gateway.DeviceArrival
}

// NewArrivalsPage builds the page.
func NewArrivalsPage(api ArrivalAPI, opts Options) *ArrivalsPage {
	return &ArrivalsPage{
		api:    api,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.logger(),
	}
}

// Load fetches both receipt lists concurrently, all-or-nothing.
func (p *ArrivalsPage) Load(ctx context.Context) error {
	var (
		meds []gateway.Arrival
		devs []gateway.DeviceArrival
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meds, err = loadCached(gctx, p.cache, cache.Key("arrivals", ""), p.ttl, func(ctx context.Context) ([]gateway.Arrival, error) {
			return p.api.Arrivals(ctx)
		})
		return err
	})
	g.Go(func() error {
		var err error
		devs, err = loadCached(gctx, p.cache, cache.Key("device_arrivals", ""), p.ttl, func(ctx context.Context) ([]gateway.DeviceArrival, error) {
			return p.api.DeviceArrivals(ctx)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Error("arrivals load failed", slog.Any("error", err))
		p.Arrivals, p.DeviceArrivals = nil, nil
		return err
	}
	p.Arrivals, p.DeviceArrivals = meds, devs
	return nil
}

// TotalReceived sums received quantities across both lists.
func (p *ArrivalsPage) TotalReceived() int {
	return sumQuantities(p.Arrivals, func(a gateway.Arrival) gateway.Quantity { return a.Quantity }) +
		sumQuantities(p.DeviceArrivals, func(a gateway.DeviceArrival) gateway.Quantity { return a.Quantity })
}

// Create posts a medicine receipt batch and refetches.
func (p *ArrivalsPage) Create(ctx context.Context, arrivals []gateway.ArrivalForm) error {
	if err := p.api.CreateArrivals(ctx, arrivals); err != nil {
		return err
	}
	if p.cache != nil {
		_ = p.cache.Invalidate(ctx, cache.Affected("arrivals", "")...)
	}
	return p.Load(ctx)
}

// CreateDevices posts a device receipt batch and refetches.
func (p *ArrivalsPage) CreateDevices(ctx context.Context, arrivals []gateway.DeviceArrivalForm) error {
	if err := p.api.CreateDeviceArrivals(ctx, arrivals); err != nil {
		return err
	}
	if p.cache != nil {
		_ = p.cache.Invalidate(ctx, cache.Affected("device_arrivals", "")...)
	}
	return p.Load(ctx)
}
