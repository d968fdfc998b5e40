package gateway

import (
	"context"
	"net/http"
)

// Notification mirrors a backend notification record.
type Notification struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt Timestamp `json:"created_at"`
}

// Notifications lists notifications, branch-scoped when branchID is
// non-empty, newest first.
func (g *Gateway) Notifications(ctx context.Context, branchID string) ([]Notification, error) {
	var out []Notification
	if err := g.list(ctx, "/notifications", branchScope(branchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead flags a notification as read.
func (g *Gateway) MarkNotificationRead(ctx context.Context, id string) error {
	return g.hc.Do(ctx, http.MethodPut, "/notifications/"+id+"/read", nil, nil, nil)
}
