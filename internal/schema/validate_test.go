package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

const issueSchema = `{
	"type": "object",
	"properties": {
		"issueKey": {"type": "string"},
		"assignee": {"type": ["string", "null"]},
		"labels": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["issueKey", "assignee"],
	"additionalProperties": false
}`

func TestValidateRawArgsAccepts(t *testing.T) {
	cases := []string{
		`{"issueKey": "PROJ-1", "assignee": "alice"}`,
		`{"issueKey": "PROJ-1", "assignee": null}`,
		`{"issueKey": "PROJ-1", "assignee": null, "labels": ["a", "b"]}`,
	}
	for _, c := range cases {
		if err := ValidateRawArgs("test_tool", json.RawMessage(issueSchema), json.RawMessage(c)); err != nil {
			t.Errorf("expected %s to validate, got: %v", c, err)
		}
	}
}

func TestValidateRawArgsRejects(t *testing.T) {
	cases := []string{
		`{"assignee": "alice"}`,                                  // missing required
		`{"issueKey": 5, "assignee": "a"}`,                       // wrong type
		`{"issueKey": "PROJ-1", "assignee": 7}`,                  // union violated
		`{"issueKey": "PROJ-1", "assignee": null, "bogus": true}`, // unknown property
	}
	for _, c := range cases {
		if err := ValidateRawArgs("test_tool", json.RawMessage(issueSchema), json.RawMessage(c)); err == nil {
			t.Errorf("expected %s to be rejected", c)
		}
	}
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	err := ValidateRawArgs("test_tool", json.RawMessage(issueSchema), json.RawMessage(`{"issueKey": 5, "labels": "nope", "assignee": 7}`))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, frag := range []string{"issueKey", "labels", "assignee"} {
		if !strings.Contains(msg, frag) {
			t.Errorf("aggregated message missing %q: %s", frag, msg)
		}
	}
}

func TestValidateEmptyArgsAsEmptyObject(t *testing.T) {
	schema := `{"type": "object", "properties": {}, "additionalProperties": false}`
	if err := ValidateRawArgs("no_arg_tool", json.RawMessage(schema), nil); err != nil {
		t.Errorf("nil args should validate as {}: %v", err)
	}

	required := `{"type": "object", "properties": {"x": {"type": "string"}}, "required": ["x"]}`
	if err := ValidateRawArgs("required_tool", json.RawMessage(required), nil); err == nil {
		t.Error("nil args must fail a schema with required fields")
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	if err := ValidateRawArgs("test_tool", json.RawMessage(issueSchema), json.RawMessage(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
