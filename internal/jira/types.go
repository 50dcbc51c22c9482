package jira

import "encoding/json"

// Issue is a Jira issue as returned by the REST API. Fields carries
// the well-known core fields typed; anything else (custom fields,
// expansions) lands in Fields.Extra untouched.
type Issue struct {
	ID     string      `json:"id,omitempty"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields is the typed core of an issue's field map plus an
// open-ended overflow for per-project custom fields.
type IssueFields struct {
	Summary     string      `json:"summary,omitempty"`
	Description string      `json:"description,omitempty"`
	Status      *Status     `json:"status,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	Assignee    *User       `json:"assignee,omitempty"`
	Reporter    *User       `json:"reporter,omitempty"`
	Created     string      `json:"created,omitempty"`
	Updated     string      `json:"updated,omitempty"`
	IssueType   *IssueType  `json:"issuetype,omitempty"`
	Project     *Project    `json:"project,omitempty"`
	Labels      []string    `json:"labels,omitempty"`
	Components  []Component `json:"components,omitempty"`
	FixVersions []Version   `json:"fixVersions,omitempty"`

	// Extra holds any field not covered above, keyed by field id
	// (e.g. customfield_10024). Values stay raw JSON.
	Extra map[string]json.RawMessage `json:"-"`
}

var issueFieldsKnown = map[string]struct{}{
	"summary":     {},
	"description": {},
	"status":      {},
	"priority":    {},
	"assignee":    {},
	"reporter":    {},
	"created":     {},
	"updated":     {},
	"issuetype":   {},
	"project":     {},
	"labels":      {},
	"components":  {},
	"fixVersions": {},
}

// UnmarshalJSON decodes the typed core and diverts unknown keys into Extra.
func (f *IssueFields) UnmarshalJSON(data []byte) error {
	type plain IssueFields
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k := range all {
		if _, ok := issueFieldsKnown[k]; ok {
			delete(all, k)
		}
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*f = IssueFields(p)
	return nil
}

// MarshalJSON re-merges Extra with the typed core. Typed fields win on
// key collision so a round-trip cannot resurrect stale raw values.
func (f IssueFields) MarshalJSON() ([]byte, error) {
	type plain IssueFields
	core, err := json.Marshal(plain(f))
	if err != nil {
		return nil, err
	}
	if len(f.Extra) == 0 {
		return core, nil
	}

	merged := make(map[string]json.RawMessage, len(f.Extra)+8)
	for k, v := range f.Extra {
		merged[k] = v
	}
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(core, &typed); err != nil {
		return nil, err
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Project is a Jira project.
type Project struct {
	ID          string `json:"id,omitempty"`
	Key         string `json:"key"`
	Name        string `json:"name,omitempty"`
	ProjectType string `json:"projectTypeKey,omitempty"`
	Lead        *User  `json:"lead,omitempty"`
}

// User is a Jira user. Data Center instances key users by name.
type User struct {
	Key          string `json:"key,omitempty"`
	Name         string `json:"name,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Active       bool   `json:"active,omitempty"`
}

// Status is an issue status.
type Status struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Priority is an issue priority.
type Priority struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// IssueType is an issue type (Bug, Story, Task, ...).
type IssueType struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Subtask     bool   `json:"subtask,omitempty"`
}

// Component is a project component.
type Component struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Version is a project version.
type Version struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Released    bool   `json:"released,omitempty"`
	Archived    bool   `json:"archived,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// Comment is an issue comment.
type Comment struct {
	ID      string `json:"id"`
	Body    string `json:"body"`
	Author  *User  `json:"author,omitempty"`
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// CommentPage is the paged comment listing for one issue.
type CommentPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Comments   []Comment `json:"comments"`
}

// Transition is a workflow transition currently available on an issue.
type Transition struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	To   *Status `json:"to,omitempty"`
}

// SearchResult is one page of a JQL search. Pagination is the
// caller's problem: increment StartAt and search again.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// IssueLinkType is a link type (Blocks, Duplicates, ...).
type IssueLinkType struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Inward  string `json:"inward,omitempty"`
	Outward string `json:"outward,omitempty"`
}

// Field is a global field definition from GET /field.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// AllowedValue is one enumerated value a field accepts on create.
type AllowedValue struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// FieldMeta describes one field of a create or edit screen.
type FieldMeta struct {
	FieldID       string         `json:"fieldId"`
	Name          string         `json:"name"`
	Required      bool           `json:"required"`
	HasValues     bool           `json:"hasAllowedValues"`
	AllowedValues []AllowedValue `json:"allowedValues,omitempty"`
}

// IssueTypeMeta is the creation metadata for one issue type: its
// identity plus the fields the create screen accepts.
type IssueTypeMeta struct {
	IssueType IssueType   `json:"issueType"`
	Fields    []FieldMeta `json:"fields"`
}

// CreateMeta is the assembled creation metadata for a project.
type CreateMeta struct {
	ProjectKey string          `json:"projectKey"`
	IssueTypes []IssueTypeMeta `json:"issueTypes"`
}

// EditMeta is the edit-screen metadata for an issue, keyed by field id.
type EditMeta struct {
	Fields map[string]FieldMeta `json:"fields"`
}

// CreatedIssue is the minimal response of POST /issue.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self,omitempty"`
}
