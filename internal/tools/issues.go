package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golovatskygroup/mcp-jira/internal/jira"
	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

type getIssueInput struct {
	IssueKey string   `json:"issueKey"`
	Expand   []string `json:"expand,omitempty"`
}

func (h *Handler) getIssue(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in getIssueInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	issue, err := h.client.GetIssue(ctx, in.IssueKey, in.Expand...)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(issue), nil
}

type searchIssuesInput struct {
	JQL        string   `json:"jql"`
	StartAt    int      `json:"startAt,omitempty"`
	MaxResults int      `json:"maxResults,omitempty"`
	Fields     []string `json:"fields,omitempty"`
}

func (h *Handler) searchIssues(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in searchIssuesInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	res, err := h.client.SearchIssues(ctx, in.JQL, in.StartAt, in.MaxResults, in.Fields)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(res), nil
}

type createIssueInput struct {
	ProjectKey  string   `json:"projectKey"`
	Summary     string   `json:"summary"`
	IssueType   string   `json:"issueType"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

func (h *Handler) createIssue(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in createIssueInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	created, err := h.client.CreateIssue(ctx, jira.CreateIssueInput{
		ProjectKey:  in.ProjectKey,
		Summary:     in.Summary,
		IssueType:   in.IssueType,
		Description: in.Description,
		Priority:    in.Priority,
		Assignee:    in.Assignee,
		Labels:      in.Labels,
	})
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(created), nil
}

type createIssueAdvancedInput struct {
	ProjectKey string `json:"projectKey"`
	IssueType  string `json:"issueType"`
	advancedFields
}

func (h *Handler) createIssueAdvanced(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in createIssueAdvancedInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}

	fields := assembleFields(in.advancedFields)
	// Project and issue type are structural, not part of the
	// overlayable field surface.
	fields["project"] = map[string]any{"key": in.ProjectKey}
	fields["issuetype"] = map[string]any{"name": in.IssueType}

	created, err := h.client.CreateIssueRaw(ctx, fields)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(created), nil
}

type updateIssueInput struct {
	IssueKey    string   `json:"issueKey"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

func (h *Handler) updateIssue(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in updateIssueInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	err := h.client.UpdateIssue(ctx, in.IssueKey, jira.UpdateIssueInput{
		Summary:     in.Summary,
		Description: in.Description,
		Priority:    in.Priority,
		Assignee:    in.Assignee,
		Labels:      in.Labels,
	})
	if err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Issue %s updated", in.IssueKey)), nil
}

type updateIssueAdvancedInput struct {
	IssueKey string `json:"issueKey"`
	advancedFields
}

func (h *Handler) updateIssueAdvanced(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in updateIssueAdvancedInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.UpdateIssueRaw(ctx, in.IssueKey, assembleFields(in.advancedFields)); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Issue %s updated", in.IssueKey)), nil
}

type issueKeyInput struct {
	IssueKey string `json:"issueKey"`
}

func (h *Handler) deleteIssue(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in issueKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.DeleteIssue(ctx, in.IssueKey); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Issue %s deleted", in.IssueKey)), nil
}

type assignIssueInput struct {
	IssueKey string  `json:"issueKey"`
	Assignee *string `json:"assignee"`
}

func (h *Handler) assignIssue(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in assignIssueInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.AssignIssue(ctx, in.IssueKey, in.Assignee); err != nil {
		return remoteError(err), nil
	}
	if in.Assignee == nil {
		return textResult(fmt.Sprintf("Issue %s unassigned", in.IssueKey)), nil
	}
	return textResult(fmt.Sprintf("Issue %s assigned to %s", in.IssueKey, *in.Assignee)), nil
}

func (h *Handler) getTransitions(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in issueKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	transitions, err := h.client.GetTransitions(ctx, in.IssueKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(transitions), nil
}

type transitionIssueInput struct {
	IssueKey     string `json:"issueKey"`
	TransitionID string `json:"transitionId"`
	Comment      string `json:"comment,omitempty"`
}

func (h *Handler) transitionIssue(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in transitionIssueInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.TransitionIssue(ctx, in.IssueKey, in.TransitionID, in.Comment); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Issue %s transitioned (transition %s)", in.IssueKey, in.TransitionID)), nil
}

type watcherInput struct {
	IssueKey string `json:"issueKey"`
	Username string `json:"username"`
}

func (h *Handler) addWatcher(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in watcherInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.AddWatcher(ctx, in.IssueKey, in.Username); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Added %s as watcher on %s", in.Username, in.IssueKey)), nil
}

func (h *Handler) removeWatcher(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in watcherInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.RemoveWatcher(ctx, in.IssueKey, in.Username); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Removed %s as watcher from %s", in.Username, in.IssueKey)), nil
}

type linkIssuesInput struct {
	InwardIssue  string `json:"inwardIssue"`
	OutwardIssue string `json:"outwardIssue"`
	LinkType     string `json:"linkType"`
}

func (h *Handler) linkIssues(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in linkIssuesInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.LinkIssues(ctx, in.InwardIssue, in.OutwardIssue, in.LinkType); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Linked %s to %s (%s)", in.InwardIssue, in.OutwardIssue, in.LinkType)), nil
}
