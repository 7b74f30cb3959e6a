package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/basket-cli/basket/internal/model"
)

func (c *Client) GroupItems(ctx context.Context, token, groupID string) ([]model.Item, error) {
	var out []model.Item
	if err := c.do(ctx, "list items", http.MethodGet, "/groups/"+url.PathEscape(groupID)+"/items", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateItem(ctx context.Context, token, groupID, title string) (*model.Item, error) {
	body := map[string]string{"title": title}
	var out model.Item
	if err := c.do(ctx, "create item", http.MethodPost, "/groups/"+url.PathEscape(groupID)+"/items", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, token, groupID, itemID string) error {
	path := "/groups/" + url.PathEscape(groupID) + "/items/" + url.PathEscape(itemID)
	return c.do(ctx, "delete item", http.MethodDelete, path, token, nil, nil)
}
