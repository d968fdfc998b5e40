// Package session holds the locally cached identity of the signed-in user.
// The session is created at login, read on every page load and cleared at
// logout; it is always passed explicitly, never read from ambient state.
package session

import (
	"context"
	"errors"
	"time"
)

// Roles assigned by the backend.
const (
	RoleAdmin  = "admin"
	RoleBranch = "branch"
)

// ErrNoSession indicates that nobody is signed in.
var ErrNoSession = errors.New("no active session")

// User is the cached session identity. BranchID scopes every list query for
// branch users; admins see the central-warehouse view by default.
type User struct {
	ID         string `json:"id"`
	Login      string `json:"login"`
	Role       string `json:"role"`
	BranchID   string `json:"branch_id,omitempty"`
	BranchName string `json:"branch_name,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Scope returns the branch id used to scope list queries; empty means the
// central warehouse.
func (u User) Scope() string {
	if u.IsAdmin() {
		return ""
	}
	return u.BranchID
}

// Session couples the user with their bearer token.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists the session across process restarts.
type Store interface {
	// Load returns the current session or ErrNoSession.
	Load(ctx context.Context) (*Session, error)
	// Save replaces the current session.
	Save(ctx context.Context, sess *Session) error
	// Clear forgets the current session. Clearing an absent session is
	// not an error.
	Clear(ctx context.Context) error
}
