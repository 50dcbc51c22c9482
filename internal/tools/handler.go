// Package tools dispatches MCP tool calls to the Jira client:
// validate arguments against the registry schema, invoke the client,
// shape the reply. No state survives a call.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golovatskygroup/mcp-jira/internal/jira"
	"github.com/golovatskygroup/mcp-jira/internal/registry"
	"github.com/golovatskygroup/mcp-jira/internal/schema"
	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

// ErrUnknownTool marks a call to a name the registry does not hold.
// Distinct from remote and internal failures.
var ErrUnknownTool = errors.New("unknown tool")

// ErrInvalidArgs marks arguments that failed schema validation. No
// network call has been made when this is returned.
var ErrInvalidArgs = errors.New("invalid arguments")

type toolFunc func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error)

// Handler routes tool calls to client methods.
type Handler struct {
	registry *registry.Registry
	client   *jira.Client
	routes   map[string]toolFunc
}

// NewHandler creates a handler over the given registry and client.
func NewHandler(reg *registry.Registry, client *jira.Client) *Handler {
	h := &Handler{registry: reg, client: client}
	h.routes = map[string]toolFunc{
		"jira_get_issue":             h.getIssue,
		"jira_search_issues":         h.searchIssues,
		"jira_create_issue":          h.createIssue,
		"jira_create_issue_advanced": h.createIssueAdvanced,
		"jira_update_issue":          h.updateIssue,
		"jira_update_issue_advanced": h.updateIssueAdvanced,
		"jira_delete_issue":          h.deleteIssue,
		"jira_assign_issue":          h.assignIssue,
		"jira_get_transitions":       h.getTransitions,
		"jira_transition_issue":      h.transitionIssue,
		"jira_add_comment":           h.addComment,
		"jira_get_comments":          h.getComments,
		"jira_update_comment":        h.updateComment,
		"jira_delete_comment":        h.deleteComment,
		"jira_add_watcher":           h.addWatcher,
		"jira_remove_watcher":        h.removeWatcher,
		"jira_link_issues":           h.linkIssues,
		"jira_get_link_types":        h.getLinkTypes,
		"jira_list_projects":         h.listProjects,
		"jira_get_project":           h.getProject,
		"jira_get_create_meta":       h.getCreateMeta,
		"jira_get_edit_meta":         h.getEditMeta,
		"jira_get_field_options":     h.getFieldOptions,
		"jira_list_fields":           h.listFields,
		"jira_list_priorities":       h.listPriorities,
		"jira_list_statuses":         h.listStatuses,
		"jira_get_current_user":      h.getCurrentUser,
		"jira_search_users":          h.searchUsers,
		"jira_list_versions":         h.listVersions,
		"jira_list_components":       h.listComponents,
	}
	return h
}

// Handle validates and dispatches one tool call. Unknown names and
// schema violations are returned as typed errors before any network
// traffic; remote failures come back as IsError results.
func (h *Handler) Handle(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	tool, ok := h.registry.Get(name)
	if !ok {
		if suggestions := h.registry.Suggest(name); len(suggestions) > 0 {
			return nil, fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknownTool, name, strings.Join(suggestions, ", "))
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	if err := schema.ValidateRawArgs(name, tool.InputSchema, args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}

	fn, ok := h.routes[name]
	if !ok {
		// Registry and route table drifted apart; a programming error.
		return nil, fmt.Errorf("no handler wired for tool %q", name)
	}
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	return fn(ctx, args)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.ContentBlock{{Type: "text", Text: text}}}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.ContentBlock{{Type: "text", Text: "Error: " + msg}}, IsError: true}
}

// jsonResult pretty-prints a value as the single text block of a
// successful result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to serialize result: " + err.Error())
	}
	return textResult(string(data))
}

// remoteError shapes a client failure. Jira API errors keep their
// status and raw body; transport errors pass through as-is.
func remoteError(err error) *mcp.CallToolResult {
	var apiErr *jira.APIError
	if errors.As(err, &apiErr) {
		return errorResult(apiErr.Error())
	}
	return errorResult(err.Error())
}
