package gateway

import (
	"context"
	"net/http"
)

// AuthUser is the user identity returned by the login endpoint.
type AuthUser struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id"`
}

// LoginResult carries the bearer token and its user.
type LoginResult struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates against the backend and returns the session material.
func (g *Gateway) Login(ctx context.Context, login, password string) (LoginResult, error) {
	payload := loginRequest{Login: login, Password: password}
	if err := g.check(payload); err != nil {
		return LoginResult{}, err
	}
	var out LoginResult
	if err := g.hc.Do(ctx, http.MethodPost, "/auth/login", nil, payload, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}
