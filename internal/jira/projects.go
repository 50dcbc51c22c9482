package jira

import (
	"context"
	"net/http"
	"net/url"
)

// GetProjects lists all projects visible to the authenticated user.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.call(ctx, http.MethodGet, "/project", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project by key.
func (c *Client) GetProject(ctx context.Context, key string) (*Project, error) {
	var project Project
	if err := c.call(ctx, http.MethodGet, "/project/"+url.PathEscape(key), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetVersions lists the versions of a project.
func (c *Client) GetVersions(ctx context.Context, key string) ([]Version, error) {
	var versions []Version
	if err := c.call(ctx, http.MethodGet, "/project/"+url.PathEscape(key)+"/versions", nil, nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetComponents lists the components of a project.
func (c *Client) GetComponents(ctx context.Context, key string) ([]Component, error) {
	var components []Component
	if err := c.call(ctx, http.MethodGet, "/project/"+url.PathEscape(key)+"/components", nil, nil, &components); err != nil {
		return nil, err
	}
	return components, nil
}
