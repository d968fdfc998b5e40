package pages

import (
	"context"
	"log/slog"
	"time"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/platform/cache"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// NotificationAPI is the gateway slice the notifications page depends on.
type NotificationAPI interface {
	Notifications(ctx context.Context, branchID string) ([]gateway.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// NotificationsPage lists branch notifications.
type NotificationsPage struct {
	api    NotificationAPI
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
	user   session.User

	Notifications []gateway.Notification
}

// NewNotificationsPage builds the page for the signed-in user.
func NewNotificationsPage(api NotificationAPI, opts Options) *NotificationsPage {
	return &NotificationsPage{
		api:    api,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.logger(),
		user:   opts.User,
	}
}

// Load refetches the notification list.
func (p *NotificationsPage) Load(ctx context.Context) error {
	scope := p.user.Scope()
	items, err := loadCached(ctx, p.cache, cache.Key("notifications", scope), p.ttl, func(ctx context.Context) ([]gateway.Notification, error) {
		return p.api.Notifications(ctx, scope)
	})
	if err != nil {
		p.logger.Error("notifications load failed", slog.Any("error", err))
		p.Notifications = nil
		return err
	}
	p.Notifications = items
	return nil
}

// Unread counts notifications not yet read.
func (p *NotificationsPage) Unread() int {
	count := 0
	for _, n := range p.Notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkRead flags one notification and refetches.
func (p *NotificationsPage) MarkRead(ctx context.Context, id string) error {
	if err := p.api.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	if p.cache != nil {
		_ = p.cache.Invalidate(ctx, cache.Affected("notifications", p.user.Scope())...)
	}
	return p.Load(ctx)
}
