package backend

import (
	"context"

	"asempv/internal/domain"
)

const (
	pathLogin   = "api/v2/auth/login/"
	pathRefresh = "api/v2/auth/refresh/"
)

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Response[domain.TokenPair], error) {
	resp, err := postJSON[tokenResponse](ctx, c, pathLogin, loginRequest{
		Username: creds.Username.String(),
		Password: creds.Password,
	})
	if err != nil {
		return domain.Response[domain.TokenPair]{}, err
	}
	return mapBody(resp, func(t tokenResponse) domain.TokenPair {
		return domain.TokenPair{AccessToken: t.Access, RefreshToken: t.Refresh}
	}), nil
}

// Refresh exchanges refreshToken for a new pair. When the server does not
// rotate refresh tokens the old one is carried over.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.Response[domain.TokenPair], error) {
	resp, err := postJSON[tokenResponse](ctx, c, pathRefresh, refreshRequest{Refresh: refreshToken})
	if err != nil {
		return domain.Response[domain.TokenPair]{}, err
	}
	return mapBody(resp, func(t tokenResponse) domain.TokenPair {
		pair := domain.TokenPair{AccessToken: t.Access, RefreshToken: t.Refresh}
		if pair.RefreshToken == "" {
			pair.RefreshToken = refreshToken
		}
		return pair
	}), nil
}
