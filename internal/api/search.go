package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/basket-cli/basket/internal/model"
)

func (c *Client) SearchUsers(ctx context.Context, token, query string) ([]model.User, error) {
	var out []model.User
	path := "/users/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, "search users", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchGroups(ctx context.Context, token, query string) ([]model.Group, error) {
	var out []model.Group
	path := "/groups/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, "search groups", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
