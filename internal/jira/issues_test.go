package jira

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestGetIssueReturnsRequestedKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/PROJ-123", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"key": "PROJ-123",
			"fields": map[string]any{
				"summary": "A bug",
				"status":  map[string]any{"name": "Open"},
			},
		})
	})

	issue, err := c.GetIssue(context.Background(), "PROJ-123")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-123", issue.Key)
	assert.Equal(t, "A bug", issue.Fields.Summary)
}

func TestGetIssueExpandJoined(t *testing.T) {
	var gotExpand string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotExpand = r.URL.Query().Get("expand")
		writeJSON(t, w, map[string]any{"key": "PROJ-1", "fields": map[string]any{}})
	})

	_, err := c.GetIssue(context.Background(), "PROJ-1", "changelog", "renderedFields")
	require.NoError(t, err)
	assert.Equal(t, "changelog,renderedFields", gotExpand)
}

func TestSearchIssuesDefaultsAndFixture(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/2/search", r.URL.Path)
		body = decodeBody(t, r)
		writeJSON(t, w, map[string]any{
			"startAt":    0,
			"maxResults": 2,
			"total":      5,
			"issues": []any{
				map[string]any{"key": "DEMO-1", "fields": map[string]any{"summary": "one", "status": map[string]any{"name": "Open"}}},
				map[string]any{"key": "DEMO-2", "fields": map[string]any{"summary": "two", "status": map[string]any{"name": "Done"}}},
			},
		})
	})

	res, err := c.SearchIssues(context.Background(), "project = DEMO", 0, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, "project = DEMO", body["jql"])
	assert.Equal(t, float64(0), body["startAt"])
	assert.Equal(t, float64(2), body["maxResults"])
	fields, ok := body["fields"].([]any)
	require.True(t, ok, "default field list must be sent")
	assert.Contains(t, fields, "summary")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "labels")

	assert.Equal(t, 5, res.Total)
	require.Len(t, res.Issues, 2)
	for _, is := range res.Issues {
		assert.NotEmpty(t, is.Key)
		assert.NotEmpty(t, is.Fields.Summary)
		require.NotNil(t, is.Fields.Status)
		assert.NotEmpty(t, is.Fields.Status.Name)
	}
}

func TestSearchIssuesExplicitFieldsPassThrough(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body = decodeBody(t, r)
		writeJSON(t, w, map[string]any{"total": 0, "issues": []any{}})
	})

	_, err := c.SearchIssues(context.Background(), "project = X", 10, 5, []string{"duedate"})
	require.NoError(t, err)
	assert.Equal(t, []any{"duedate"}, body["fields"])
	assert.Equal(t, float64(10), body["startAt"])
}

func TestCreateIssueSkipsAbsentOptionals(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body = decodeBody(t, r)
		writeJSON(t, w, map[string]any{"id": "10001", "key": "PROJ-9"})
	})

	created, err := c.CreateIssue(context.Background(), CreateIssueInput{
		ProjectKey: "PROJ",
		Summary:    "New issue",
		IssueType:  "Task",
	})
	require.NoError(t, err)
	assert.Equal(t, "PROJ-9", created.Key)

	fields := body["fields"].(map[string]any)
	assert.Len(t, fields, 3, "only project, summary, issuetype expected")
	assert.NotContains(t, fields, "priority")
	assert.NotContains(t, fields, "assignee")
	assert.NotContains(t, fields, "description")
}

func TestUpdateIssuePartialPayloadShape(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/rest/api/2/issue/PROJ-7", r.URL.Path)
		body = decodeBody(t, r)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateIssue(context.Background(), "PROJ-7", UpdateIssueInput{Summary: "New summary"})
	require.NoError(t, err)

	fields := body["fields"].(map[string]any)
	require.Len(t, fields, 1, "only summary may appear in the payload")
	assert.Equal(t, "New summary", fields["summary"])
}

func TestAssignIssueNullMeansUnassign(t *testing.T) {
	var raw []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/PROJ-3/assignee", r.URL.Path)
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.AssignIssue(context.Background(), "PROJ-3", nil))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	v, ok := body["name"]
	require.True(t, ok, "name key must be present")
	assert.Equal(t, "null", string(v), "null must be transmitted literally, not omitted")
}

func TestAssignIssueWithName(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body = decodeBody(t, r)
		w.WriteHeader(http.StatusNoContent)
	})

	name := "alice"
	require.NoError(t, c.AssignIssue(context.Background(), "PROJ-3", &name))
	assert.Equal(t, "alice", body["name"])
}

func TestTransitionIssueCommentBlockOnlyWhenPresent(t *testing.T) {
	var bodies []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		bodies = append(bodies, decodeBody(t, r))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.TransitionIssue(context.Background(), "PROJ-1", "31", ""))
	require.NoError(t, c.TransitionIssue(context.Background(), "PROJ-1", "31", "moving on"))

	require.Len(t, bodies, 2)
	assert.NotContains(t, bodies[0], "update")

	update := bodies[1]["update"].(map[string]any)
	comments := update["comment"].([]any)
	add := comments[0].(map[string]any)["add"].(map[string]any)
	assert.Equal(t, "moving on", add["body"])
}

func TestAddWatcherSendsRawUsernameString(t *testing.T) {
	var raw []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.AddWatcher(context.Background(), "PROJ-1", "bob"))
	assert.Equal(t, `"bob"`, string(raw))
}

func TestRemoveWatcherUsesQueryParameter(t *testing.T) {
	var gotUser string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotUser = r.URL.Query().Get("username")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.RemoveWatcher(context.Background(), "PROJ-1", "bob"))
	assert.Equal(t, "bob", gotUser)
}

func TestLinkIssuesAddressesTypeByName(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issueLink", r.URL.Path)
		body = decodeBody(t, r)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.LinkIssues(context.Background(), "PROJ-1", "PROJ-2", "Blocks"))

	assert.Equal(t, map[string]any{"name": "Blocks"}, body["type"])
	assert.Equal(t, map[string]any{"key": "PROJ-1"}, body["inwardIssue"])
	assert.Equal(t, map[string]any{"key": "PROJ-2"}, body["outwardIssue"])
}
