package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueFieldsCapturesCustomFields(t *testing.T) {
	raw := `{
		"summary": "A bug",
		"status": {"name": "Open"},
		"customfield_10024": {"value": "Backend"},
		"customfield_10001": 42
	}`

	var f IssueFields
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	assert.Equal(t, "A bug", f.Summary)
	require.NotNil(t, f.Status)
	assert.Equal(t, "Open", f.Status.Name)

	require.Len(t, f.Extra, 2)
	assert.JSONEq(t, `{"value":"Backend"}`, string(f.Extra["customfield_10024"]))
	assert.JSONEq(t, `42`, string(f.Extra["customfield_10001"]))
}

func TestIssueFieldsRoundTripKeepsExtras(t *testing.T) {
	raw := `{"summary":"s","customfield_1":"x"}`

	var f IssueFields
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	out, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "s", m["summary"])
	assert.Equal(t, "x", m["customfield_1"])
}

func TestIssueFieldsNoExtrasStaysClean(t *testing.T) {
	var f IssueFields
	require.NoError(t, json.Unmarshal([]byte(`{"summary":"s"}`), &f))
	assert.Nil(t, f.Extra)
}
