package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/basket-cli/basket/internal/model"
)

// MyGroups lists the groups the caller belongs to.
func (c *Client) MyGroups(ctx context.Context, token string) ([]model.Group, error) {
	var out []model.Group
	if err := c.do(ctx, "list groups", http.MethodGet, "/groups", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGroup makes a new group. Password may be empty for an open group.
func (c *Client) CreateGroup(ctx context.Context, token, name, password string) (*model.Group, error) {
	body := map[string]string{"name": name, "password": password}
	var out model.Group
	if err := c.do(ctx, "create group", http.MethodPost, "/groups", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetGroup(ctx context.Context, token, groupID string) (*model.Group, error) {
	var out model.Group
	if err := c.do(ctx, "get group", http.MethodGet, "/groups/"+url.PathEscape(groupID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGroup removes a group. Owner-only; the server enforces that.
func (c *Client) DeleteGroup(ctx context.Context, token, groupID string) error {
	return c.do(ctx, "delete group", http.MethodDelete, "/groups/"+url.PathEscape(groupID), token, nil, nil)
}

func (c *Client) AddMember(ctx context.Context, token, groupID, memberID string) error {
	body := map[string]string{"memberId": memberID}
	return c.do(ctx, "add member", http.MethodPost, "/groups/"+url.PathEscape(groupID)+"/members", token, body, nil)
}

func (c *Client) RemoveMember(ctx context.Context, token, groupID, memberID string) error {
	path := "/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(memberID)
	return c.do(ctx, "remove member", http.MethodDelete, path, token, nil, nil)
}

// JoinGroup joins a group, presenting its password when it has one.
func (c *Client) JoinGroup(ctx context.Context, token, groupID, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, "join group", http.MethodPost, "/groups/"+url.PathEscape(groupID)+"/join", token, body, nil)
}

func (c *Client) LeaveGroup(ctx context.Context, token, groupID string) error {
	return c.do(ctx, "leave group", http.MethodPost, "/groups/"+url.PathEscape(groupID)+"/leave", token, nil, nil)
}
