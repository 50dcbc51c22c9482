// Package registry declares the fixed tool surface: one name,
// description and input schema per tool. Validation happens against
// these schemas before any request leaves the process.
package registry

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

// Registry holds the declared tools and answers lookups.
type Registry struct {
	tools  []mcp.Tool
	byName map[string]mcp.Tool
}

// New builds the registry with the full tool surface.
func New() *Registry {
	tools := declaredTools()
	byName := make(map[string]mcp.Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	return &Registry{tools: tools, byName: byName}
}

// List returns all tools in declaration order.
func (r *Registry) List() []mcp.Tool {
	out := make([]mcp.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Get returns a tool by exact name.
func (r *Registry) Get(name string) (mcp.Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Suggest returns the closest known tool names for an unknown one,
// best match first. Used to improve "unknown tool" errors.
func (r *Registry) Suggest(name string) []string {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name)
	}
	ranks := fuzzy.RankFindFold(strings.TrimSpace(name), names)
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, rk := range ranks {
		out = append(out, rk.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func declaredTools() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "jira_get_issue",
			Description: "Get a Jira issue by key, including its fields and status.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key (e.g., PROJ-123)"},
					"expand": {"type": "array", "items": {"type": "string"}, "description": "Optional expansions (e.g., changelog, renderedFields)"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_search_issues",
			Description: "Search issues with JQL. Returns one pagination window; increment startAt for the next page.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"jql": {"type": "string", "description": "JQL query (e.g., 'project = PROJ AND status = Open')"},
					"startAt": {"type": "integer", "minimum": 0, "description": "Index of the first result (default: 0)"},
					"maxResults": {"type": "integer", "minimum": 1, "description": "Page size (default: 50)"},
					"fields": {"type": "array", "items": {"type": "string"}, "description": "Fields to return (default: a fixed common set)"}
				},
				"required": ["jql"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_create_issue",
			Description: "Create an issue with the common named fields. Use jira_create_issue_advanced for custom fields.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key (e.g., PROJ)"},
					"summary": {"type": "string", "description": "Issue summary"},
					"issueType": {"type": "string", "description": "Issue type name (e.g., Bug, Story)"},
					"description": {"type": "string", "description": "Issue description"},
					"priority": {"type": "string", "description": "Priority name (e.g., High)"},
					"assignee": {"type": "string", "description": "Assignee username"},
					"labels": {"type": "array", "items": {"type": "string"}, "description": "Labels to set"}
				},
				"required": ["projectKey", "summary", "issueType"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_create_issue_advanced",
			Description: "Create an issue with the full field surface: components, versions and arbitrary custom fields. Custom fields are merged last and may override named fields.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key (e.g., PROJ)"},
					"summary": {"type": "string", "description": "Issue summary"},
					"issueType": {"type": "string", "description": "Issue type name"},
					"description": {"type": "string", "description": "Issue description"},
					"priority": {"type": "string", "description": "Priority name"},
					"assignee": {"type": "string", "description": "Assignee username"},
					"labels": {"type": "array", "items": {"type": "string"}, "description": "Labels to set"},
					"components": {"type": "array", "items": {"type": "string"}, "description": "Component names"},
					"fixVersions": {"type": "array", "items": {"type": "string"}, "description": "Fix version names"},
					"affectsVersions": {"type": "array", "items": {"type": "string"}, "description": "Affected version names"},
					"customFields": {"type": "object", "description": "Raw field overlay keyed by field id (e.g., customfield_10024); wins on collision"}
				},
				"required": ["projectKey", "summary", "issueType"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_update_issue",
			Description: "Update the common named fields of an issue. Only supplied fields are changed.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"summary": {"type": "string", "description": "New summary"},
					"description": {"type": "string", "description": "New description"},
					"priority": {"type": "string", "description": "New priority name"},
					"assignee": {"type": "string", "description": "New assignee username"},
					"labels": {"type": "array", "items": {"type": "string"}, "description": "Labels to set (replaces the list)"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_update_issue_advanced",
			Description: "Update an issue with the full field surface including custom fields. Custom fields are merged last and may override named fields.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"summary": {"type": "string", "description": "New summary"},
					"description": {"type": "string", "description": "New description"},
					"priority": {"type": "string", "description": "New priority name"},
					"assignee": {"type": "string", "description": "New assignee username"},
					"labels": {"type": "array", "items": {"type": "string"}, "description": "Labels to set"},
					"components": {"type": "array", "items": {"type": "string"}, "description": "Component names"},
					"fixVersions": {"type": "array", "items": {"type": "string"}, "description": "Fix version names"},
					"affectsVersions": {"type": "array", "items": {"type": "string"}, "description": "Affected version names"},
					"customFields": {"type": "object", "description": "Raw field overlay keyed by field id; wins on collision"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_delete_issue",
			Description: "Delete an issue permanently.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_assign_issue",
			Description: "Assign an issue to a user, or pass null to unassign it.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"assignee": {"type": ["string", "null"], "description": "Username, or null to unassign"}
				},
				"required": ["issueKey", "assignee"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_transitions",
			Description: "List the workflow transitions currently available on an issue. Fetched fresh each call; never cached.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_transition_issue",
			Description: "Move an issue through a workflow transition, optionally adding a comment.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"transitionId": {"type": "string", "description": "Transition id (from jira_get_transitions)"},
					"comment": {"type": "string", "description": "Optional comment to add with the transition"}
				},
				"required": ["issueKey", "transitionId"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_add_comment",
			Description: "Add a comment to an issue.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"body": {"type": "string", "description": "Comment text"}
				},
				"required": ["issueKey", "body"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_comments",
			Description: "List the comments on an issue.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_update_comment",
			Description: "Replace the body of an existing comment.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"commentId": {"type": "string", "description": "Comment id"},
					"body": {"type": "string", "description": "New comment text"}
				},
				"required": ["issueKey", "commentId", "body"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_delete_comment",
			Description: "Delete a comment from an issue.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"commentId": {"type": "string", "description": "Comment id"}
				},
				"required": ["issueKey", "commentId"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_add_watcher",
			Description: "Add a user to an issue's watcher list.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"username": {"type": "string", "description": "Username to add"}
				},
				"required": ["issueKey", "username"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_remove_watcher",
			Description: "Remove a user from an issue's watcher list.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"},
					"username": {"type": "string", "description": "Username to remove"}
				},
				"required": ["issueKey", "username"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_link_issues",
			Description: "Link two issues. The link type is addressed by name (e.g., Blocks); Jira resolves it.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"inwardIssue": {"type": "string", "description": "Inward issue key"},
					"outwardIssue": {"type": "string", "description": "Outward issue key"},
					"linkType": {"type": "string", "description": "Link type name (see jira_get_link_types)"}
				},
				"required": ["inwardIssue", "outwardIssue", "linkType"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_link_types",
			Description: "List all issue link types.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_list_projects",
			Description: "List all projects visible to the authenticated user.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_project",
			Description: "Get one project by key.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key"}
				},
				"required": ["projectKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_create_meta",
			Description: "Discover which fields (and allowed values) issue creation accepts in a project. Optionally filter to one issue type.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key"},
					"issueType": {"type": "string", "description": "Optional issue type name filter (case-insensitive)"}
				},
				"required": ["projectKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_edit_meta",
			Description: "Discover which fields an existing issue's edit screen accepts.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"issueKey": {"type": "string", "description": "Issue key"}
				},
				"required": ["issueKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_field_options",
			Description: "Get the allowed values of one field for an issue type in a project. Returns an empty list when nothing matches.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key"},
					"issueType": {"type": "string", "description": "Issue type name"},
					"fieldKey": {"type": "string", "description": "Field id (e.g., priority, customfield_10024)"}
				},
				"required": ["projectKey", "issueType", "fieldKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_list_fields",
			Description: "List all field definitions, built-in and custom.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_list_priorities",
			Description: "List all priorities configured on the instance.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_list_statuses",
			Description: "List all statuses configured on the instance.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_get_current_user",
			Description: "Get the authenticated user.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_search_users",
			Description: "Search users by username fragment.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"username": {"type": "string", "description": "Username fragment to search for"}
				},
				"required": ["username"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_list_versions",
			Description: "List the versions of a project.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key"}
				},
				"required": ["projectKey"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "jira_list_components",
			Description: "List the components of a project.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"projectKey": {"type": "string", "description": "Project key"}
				},
				"required": ["projectKey"],
				"additionalProperties": false
			}`),
		},
	}
}
