package tools

import (
	"context"
	"encoding/json"

	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

type projectKeyInput struct {
	ProjectKey string `json:"projectKey"`
}

func (h *Handler) listProjects(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	projects, err := h.client.GetProjects(ctx)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(projects), nil
}

func (h *Handler) getProject(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in projectKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	project, err := h.client.GetProject(ctx, in.ProjectKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(project), nil
}

func (h *Handler) listVersions(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in projectKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	versions, err := h.client.GetVersions(ctx, in.ProjectKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(versions), nil
}

func (h *Handler) listComponents(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in projectKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	components, err := h.client.GetComponents(ctx, in.ProjectKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(components), nil
}
