package jira

import (
	"context"
	"net/http"
	"net/url"
)

// Myself fetches the authenticated user.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodGet, "/myself", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsers searches users by username fragment.
func (c *Client) SearchUsers(ctx context.Context, username string) ([]User, error) {
	q := url.Values{}
	q.Set("username", username)
	var users []User
	if err := c.call(ctx, http.MethodGet, "/user/search", q, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
