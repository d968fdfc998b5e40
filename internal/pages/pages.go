// Package pages implements the view controllers of the client. Each page
// owns its local list state, loads it on demand and re-fetches after every
// mutation; the backend response always replaces state wholesale.
package pages

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// Options carries the dependencies shared by every page.
type Options struct {
	Cache  cache.Store
	TTL    time.Duration
	Logger *slog.Logger
	User   session.User
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// loadCached reads a list through the cache, fetching on a miss. A nil store
// always fetches.
func loadCached[T any](ctx context.Context, store cache.Store, key string, ttl time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if store == nil {
		return fetch(ctx)
	}
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		var cached []T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// A corrupt entry falls through to a fresh fetch.
		_ = store.Invalidate(ctx, key)
	}
	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		_ = store.Set(ctx, key, data, ttl)
	}
	return items, nil
}

// sortByName orders items by display name using language-aware collation.
func sortByName[T any](items []T, name func(T) string) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}

// sumQuantities totals item quantities; missing and non-numeric quantities
// already decode as zero.
func sumQuantities[T any](items []T, qty func(T) gateway.Quantity) int {
	total := 0
	for _, item := range items {
		total += int(qty(item))
	}
	return total
}
