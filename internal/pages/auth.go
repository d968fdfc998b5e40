package pages

import (
	"context"
	"time"

	"github.com/pharmadesk/pharmadesk/internal/gateway"
	"github.com/pharmadesk/pharmadesk/internal/session"
)

// AuthAPI is the gateway slice sign-in depends on.
type AuthAPI interface {
	Login(ctx context.Context, login, password string) (gateway.LoginResult, error)
	Branches(ctx context.Context) ([]gateway.Branch, error)
}

// SignIn authenticates, resolves the branch display name for branch users
// and persists the session. The branch-name lookup is cosmetic; its failure
// does not fail the login.
func SignIn(ctx context.Context, api AuthAPI, store session.Store, login, password string) (session.User, error) {
	res, err := api.Login(ctx, login, password)
	if err != nil {
		return session.User{}, err
	}
	user := session.User{
		ID:       res.User.ID,
		Login:    res.User.Login,
		Role:     res.User.Role,
		BranchID: res.User.BranchID,
	}
	if user.Role == session.RoleBranch && user.BranchID != "" {
		if branches, err := api.Branches(ctx); err == nil {
			for _, b := range branches {
				if b.ID == user.BranchID {
					user.BranchName = b.Name
					break
				}
			}
		}
	}
	sess := &session.Session{Token: res.AccessToken, User: user, CreatedAt: time.Now()}
	if err := store.Save(ctx, sess); err != nil {
		return session.User{}, err
	}
	return user, nil
}

// SignOut clears the persisted session.
func SignOut(ctx context.Context, store session.Store) error {
	return store.Clear(ctx)
}
