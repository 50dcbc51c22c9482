package tools

import (
	"context"
	"encoding/json"

	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

type getCreateMetaInput struct {
	ProjectKey string `json:"projectKey"`
	IssueType  string `json:"issueType,omitempty"`
}

func (h *Handler) getCreateMeta(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in getCreateMetaInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	meta, err := h.client.GetCreateMeta(ctx, in.ProjectKey, in.IssueType)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(meta), nil
}

func (h *Handler) getEditMeta(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in issueKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	meta, err := h.client.GetEditMeta(ctx, in.IssueKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(meta), nil
}

type getFieldOptionsInput struct {
	ProjectKey string `json:"projectKey"`
	IssueType  string `json:"issueType"`
	FieldKey   string `json:"fieldKey"`
}

func (h *Handler) getFieldOptions(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in getFieldOptionsInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	options, err := h.client.GetFieldOptions(ctx, in.ProjectKey, in.IssueType, in.FieldKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(options), nil
}

func (h *Handler) listFields(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	fields, err := h.client.GetFields(ctx)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(fields), nil
}

func (h *Handler) listPriorities(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	priorities, err := h.client.GetPriorities(ctx)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(priorities), nil
}

func (h *Handler) listStatuses(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	statuses, err := h.client.GetStatuses(ctx)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(statuses), nil
}

func (h *Handler) getLinkTypes(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	linkTypes, err := h.client.GetLinkTypes(ctx)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(linkTypes), nil
}

func (h *Handler) getCurrentUser(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	user, err := h.client.Myself(ctx)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(user), nil
}

type searchUsersInput struct {
	Username string `json:"username"`
}

func (h *Handler) searchUsers(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in searchUsersInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	users, err := h.client.SearchUsers(ctx, in.Username)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(users), nil
}
