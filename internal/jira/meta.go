package jira

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

// GetFields lists all field definitions, built-in and custom.
func (c *Client) GetFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.call(ctx, http.MethodGet, "/field", nil, nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// GetPriorities lists all priorities configured on the instance.
func (c *Client) GetPriorities(ctx context.Context) ([]Priority, error) {
	var priorities []Priority
	if err := c.call(ctx, http.MethodGet, "/priority", nil, nil, &priorities); err != nil {
		return nil, err
	}
	return priorities, nil
}

// GetStatuses lists all statuses configured on the instance.
func (c *Client) GetStatuses(ctx context.Context) ([]Status, error) {
	var statuses []Status
	if err := c.call(ctx, http.MethodGet, "/status", nil, nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// GetLinkTypes lists all issue link types.
func (c *Client) GetLinkTypes(ctx context.Context) ([]IssueLinkType, error) {
	var res struct {
		IssueLinkTypes []IssueLinkType `json:"issueLinkTypes"`
	}
	if err := c.call(ctx, http.MethodGet, "/issueLinkType", nil, nil, &res); err != nil {
		return nil, err
	}
	return res.IssueLinkTypes, nil
}

// GetEditMeta fetches the edit-screen metadata of one issue.
func (c *Client) GetEditMeta(ctx context.Context, key string) (*EditMeta, error) {
	var raw struct {
		Fields map[string]struct {
			Name          string         `json:"name"`
			Required      bool           `json:"required"`
			AllowedValues []AllowedValue `json:"allowedValues"`
		} `json:"fields"`
	}
	if err := c.call(ctx, http.MethodGet, "/issue/"+url.PathEscape(key)+"/editmeta", nil, nil, &raw); err != nil {
		return nil, err
	}

	meta := &EditMeta{Fields: make(map[string]FieldMeta, len(raw.Fields))}
	for id, f := range raw.Fields {
		meta.Fields[id] = FieldMeta{
			FieldID:       id,
			Name:          f.Name,
			Required:      f.Required,
			HasValues:     len(f.AllowedValues) > 0,
			AllowedValues: f.AllowedValues,
		}
	}
	return meta, nil
}

type pagedIssueTypes struct {
	Values []IssueType `json:"values"`
}

type pagedFieldMeta struct {
	Values []struct {
		FieldID       string         `json:"fieldId"`
		Name          string         `json:"name"`
		Required      bool           `json:"required"`
		AllowedValues []AllowedValue `json:"allowedValues"`
	} `json:"values"`
}

// GetCreateMeta assembles the creation metadata for a project: the
// creatable issue types (optionally filtered by name, case
// insensitively) and, per type, the create-screen field list with
// allowed-value enumerations. The per-type field fetches are
// independent and run in parallel.
func (c *Client) GetCreateMeta(ctx context.Context, projectKey, issueTypeName string) (*CreateMeta, error) {
	var types pagedIssueTypes
	path := "/issue/createmeta/" + url.PathEscape(projectKey) + "/issuetypes"
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &types); err != nil {
		return nil, err
	}

	selected := types.Values
	if issueTypeName != "" {
		selected = selected[:0:0]
		for _, it := range types.Values {
			if strings.EqualFold(it.Name, issueTypeName) {
				selected = append(selected, it)
			}
		}
	}

	meta := &CreateMeta{
		ProjectKey: projectKey,
		IssueTypes: make([]IssueTypeMeta, len(selected)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, it := range selected {
		i, it := i, it
		g.Go(func() error {
			q := url.Values{}
			q.Set("maxResults", "100")
			var page pagedFieldMeta
			p := path + "/" + url.PathEscape(it.ID)
			if err := c.call(gctx, http.MethodGet, p, q, nil, &page); err != nil {
				return err
			}

			fields := make([]FieldMeta, 0, len(page.Values))
			for _, f := range page.Values {
				fields = append(fields, FieldMeta{
					FieldID:       f.FieldID,
					Name:          f.Name,
					Required:      f.Required,
					HasValues:     len(f.AllowedValues) > 0,
					AllowedValues: f.AllowedValues,
				})
			}

			// Each goroutine owns a distinct slot; no locking needed.
			meta.IssueTypes[i] = IssueTypeMeta{IssueType: it, Fields: fields}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meta, nil
}

// GetFieldOptions returns the allowed values of one field for the
// first issue type matching the given name. Zero matching issue
// types yields an empty list, not an error.
func (c *Client) GetFieldOptions(ctx context.Context, projectKey, issueTypeName, fieldKey string) ([]AllowedValue, error) {
	meta, err := c.GetCreateMeta(ctx, projectKey, issueTypeName)
	if err != nil {
		return nil, err
	}
	if len(meta.IssueTypes) == 0 {
		return []AllowedValue{}, nil
	}
	for _, f := range meta.IssueTypes[0].Fields {
		if f.FieldID == fieldKey {
			return f.AllowedValues, nil
		}
	}
	return []AllowedValue{}, nil
}
