package jira

import (
	"context"
	"net/http"
	"net/url"
)

// GetComments lists all comments on an issue (one server page).
func (c *Client) GetComments(ctx context.Context, key string) (*CommentPage, error) {
	var page CommentPage
	if err := c.call(ctx, http.MethodGet, "/issue/"+url.PathEscape(key)+"/comment", nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddComment adds a comment to an issue and returns the stored copy.
func (c *Client) AddComment(ctx context.Context, key, body string) (*Comment, error) {
	var comment Comment
	payload := map[string]any{"body": body}
	if err := c.call(ctx, http.MethodPost, "/issue/"+url.PathEscape(key)+"/comment", nil, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces the body of an existing comment.
func (c *Client) UpdateComment(ctx context.Context, key, commentID, body string) (*Comment, error) {
	var comment Comment
	payload := map[string]any{"body": body}
	path := "/issue/" + url.PathEscape(key) + "/comment/" + url.PathEscape(commentID)
	if err := c.call(ctx, http.MethodPut, path, nil, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment from an issue.
func (c *Client) DeleteComment(ctx context.Context, key, commentID string) error {
	path := "/issue/" + url.PathEscape(key) + "/comment/" + url.PathEscape(commentID)
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}
