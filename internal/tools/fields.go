package tools

// advancedFields is the shared field surface of the advanced create
// and update tools.
type advancedFields struct {
	Summary         string         `json:"summary,omitempty"`
	Description     string         `json:"description,omitempty"`
	Priority        string         `json:"priority,omitempty"`
	Assignee        string         `json:"assignee,omitempty"`
	Labels          []string       `json:"labels,omitempty"`
	Components      []string       `json:"components,omitempty"`
	FixVersions     []string       `json:"fixVersions,omitempty"`
	AffectsVersions []string       `json:"affectsVersions,omitempty"`
	CustomFields    map[string]any `json:"customFields,omitempty"`
}

// assembleFields builds the outgoing field map in three merge steps:
// named scalars (set only when present), structured name lists, then
// the caller's custom-field overlay. The overlay is merged last on
// purpose and may shadow anything set before it; that ordering is an
// escape hatch callers rely on and must not change.
func assembleFields(in advancedFields) map[string]any {
	fields := map[string]any{}

	if in.Summary != "" {
		fields["summary"] = in.Summary
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Priority != "" {
		fields["priority"] = map[string]any{"name": in.Priority}
	}
	if in.Assignee != "" {
		fields["assignee"] = map[string]any{"name": in.Assignee}
	}
	if len(in.Labels) > 0 {
		fields["labels"] = in.Labels
	}

	if len(in.Components) > 0 {
		fields["components"] = nameRefs(in.Components)
	}
	if len(in.FixVersions) > 0 {
		fields["fixVersions"] = nameRefs(in.FixVersions)
	}
	if len(in.AffectsVersions) > 0 {
		fields["versions"] = nameRefs(in.AffectsVersions)
	}

	for k, v := range in.CustomFields {
		fields[k] = v
	}

	return fields
}

// nameRefs maps a list of names to Jira {name} reference objects.
func nameRefs(names []string) []any {
	refs := make([]any, 0, len(names))
	for _, n := range names {
		refs = append(refs, map[string]any{"name": n})
	}
	return refs
}
