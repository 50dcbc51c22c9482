package jira

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// defaultSearchFields is requested when a search caller passes no
// field list. Anything beyond these must be asked for explicitly.
var defaultSearchFields = []string{
	"summary", "status", "assignee", "reporter", "priority",
	"created", "updated", "issuetype", "project", "description",
	"labels", "components",
}

// GetIssue fetches one issue by key. Expansions, when given, are
// joined into a single expand query parameter.
func (c *Client) GetIssue(ctx context.Context, key string, expand ...string) (*Issue, error) {
	q := url.Values{}
	if len(expand) > 0 {
		q.Set("expand", strings.Join(expand, ","))
	}
	var issue Issue
	if err := c.call(ctx, http.MethodGet, "/issue/"+url.PathEscape(key), q, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

// SearchIssues runs a JQL search over one pagination window.
func (c *Client) SearchIssues(ctx context.Context, jql string, startAt, maxResults int, fields []string) (*SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	if len(fields) == 0 {
		fields = defaultSearchFields
	}
	body := searchRequest{
		JQL:        jql,
		StartAt:    startAt,
		MaxResults: maxResults,
		Fields:     fields,
	}
	var res SearchResult
	if err := c.call(ctx, http.MethodPost, "/search", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateIssueInput names the fixed fields of the basic create call.
// Project, Summary and IssueType are mandatory; everything else is
// skipped from the payload when absent.
type CreateIssueInput struct {
	ProjectKey  string
	Summary     string
	IssueType   string
	Description string
	Priority    string
	Assignee    string
	Labels      []string
}

// CreateIssue builds the field map from named parameters and creates
// the issue. Absent optional fields are not sent at all.
func (c *Client) CreateIssue(ctx context.Context, in CreateIssueInput) (*CreatedIssue, error) {
	fields := map[string]any{
		"project":   map[string]any{"key": in.ProjectKey},
		"summary":   in.Summary,
		"issuetype": map[string]any{"name": in.IssueType},
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Priority != "" {
		fields["priority"] = map[string]any{"name": in.Priority}
	}
	if in.Assignee != "" {
		fields["assignee"] = map[string]any{"name": in.Assignee}
	}
	if len(in.Labels) > 0 {
		fields["labels"] = in.Labels
	}
	return c.CreateIssueRaw(ctx, fields)
}

// CreateIssueRaw creates an issue from a pre-built field map. Used by
// the advanced create path which assembles custom fields itself.
func (c *Client) CreateIssueRaw(ctx context.Context, fields map[string]any) (*CreatedIssue, error) {
	var created CreatedIssue
	body := map[string]any{"fields": fields}
	if err := c.call(ctx, http.MethodPost, "/issue", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssueInput names the fixed fields of the basic update call.
// Only set fields end up in the payload (partial-update semantics).
type UpdateIssueInput struct {
	Summary     string
	Description string
	Priority    string
	Assignee    string
	Labels      []string
}

// UpdateIssue updates only the fields present in the input.
func (c *Client) UpdateIssue(ctx context.Context, key string, in UpdateIssueInput) error {
	fields := map[string]any{}
	if in.Summary != "" {
		fields["summary"] = in.Summary
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Priority != "" {
		fields["priority"] = map[string]any{"name": in.Priority}
	}
	if in.Assignee != "" {
		fields["assignee"] = map[string]any{"name": in.Assignee}
	}
	if len(in.Labels) > 0 {
		fields["labels"] = in.Labels
	}
	return c.UpdateIssueRaw(ctx, key, fields)
}

// UpdateIssueRaw sends a partial update with exactly the given fields.
func (c *Client) UpdateIssueRaw(ctx context.Context, key string, fields map[string]any) error {
	body := map[string]any{"fields": fields}
	return c.call(ctx, http.MethodPut, "/issue/"+url.PathEscape(key), nil, body, nil)
}

// DeleteIssue deletes an issue. Jira answers 204 on success.
func (c *Client) DeleteIssue(ctx context.Context, key string) error {
	return c.call(ctx, http.MethodDelete, "/issue/"+url.PathEscape(key), nil, nil, nil)
}

// AssignIssue sets or clears the assignee. A nil name is transmitted
// as a literal null, which Jira reads as "unassign".
func (c *Client) AssignIssue(ctx context.Context, key string, name *string) error {
	body := map[string]any{"name": name}
	return c.call(ctx, http.MethodPut, "/issue/"+url.PathEscape(key)+"/assignee", nil, body, nil)
}

type transitionsResponse struct {
	Transitions []Transition `json:"transitions"`
}

// GetTransitions lists the transitions currently available on an
// issue. Never cached: workflow state can change between calls.
func (c *Client) GetTransitions(ctx context.Context, key string) ([]Transition, error) {
	var res transitionsResponse
	if err := c.call(ctx, http.MethodGet, "/issue/"+url.PathEscape(key)+"/transitions", nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Transitions, nil
}

// TransitionIssue executes a transition by id, optionally appending a
// comment via the transition's update block.
func (c *Client) TransitionIssue(ctx context.Context, key, transitionID, comment string) error {
	body := map[string]any{
		"transition": map[string]any{"id": transitionID},
	}
	if strings.TrimSpace(comment) != "" {
		body["update"] = map[string]any{
			"comment": []any{
				map[string]any{"add": map[string]any{"body": comment}},
			},
		}
	}
	return c.call(ctx, http.MethodPost, "/issue/"+url.PathEscape(key)+"/transitions", nil, body, nil)
}

// AddWatcher adds a user to the issue's watcher list. The endpoint
// expects the bare username as a JSON string body.
func (c *Client) AddWatcher(ctx context.Context, key, username string) error {
	return c.call(ctx, http.MethodPost, "/issue/"+url.PathEscape(key)+"/watchers", nil, username, nil)
}

// RemoveWatcher removes a user from the issue's watcher list.
func (c *Client) RemoveWatcher(ctx context.Context, key, username string) error {
	q := url.Values{}
	q.Set("username", username)
	return c.call(ctx, http.MethodDelete, "/issue/"+url.PathEscape(key)+"/watchers", q, nil, nil)
}

// LinkIssues links two issues by key. The link type is addressed by
// name, not id; Jira resolves it server-side.
func (c *Client) LinkIssues(ctx context.Context, inwardKey, outwardKey, linkType string) error {
	body := map[string]any{
		"type":         map[string]any{"name": linkType},
		"inwardIssue":  map[string]any{"key": inwardKey},
		"outwardIssue": map[string]any{"key": outwardKey},
	}
	return c.call(ctx, http.MethodPost, "/issueLink", nil, body, nil)
}
