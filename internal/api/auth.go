package api

import (
	"context"
	"net/http"

	"github.com/basket-cli/basket/internal/model"
)

// Login exchanges credentials for a bearer token. Some backend versions
// include the user record in the response, some only the token.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out model.LoginResult
	if err := c.do(ctx, "login", http.MethodPost, "/auth", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. No token is issued; the caller is expected
// to log in afterwards.
func (c *Client) Register(ctx context.Context, name, username, password string) (*model.User, error) {
	body := map[string]string{"name": name, "username": username, "password": password}
	var out model.User
	if err := c.do(ctx, "register", http.MethodPost, "/users", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me resolves the user behind a token.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, "me", http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
