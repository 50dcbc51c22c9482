package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/golovatskygroup/mcp-jira/internal/jira"
	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

// errUnknownResource marks a URI outside the resource surface,
// distinct from remote failures.
var errUnknownResource = errors.New("unknown resource")

// Per-project resource entries are capped; a scale limit, not a cursor.
const maxProjectResources = 20

// myIssuesJQL backs the jira://my-issues snapshot.
const myIssuesJQL = "assignee = currentUser() ORDER BY updated DESC"

var projectURIPattern = regexp.MustCompile(`^jira://project/([A-Z][A-Z0-9]*)$`)

// resourceProvider answers resource enumeration and reads by
// composing read-only client calls into JSON snapshots.
type resourceProvider struct {
	client *jira.Client
}

func newResourceProvider(client *jira.Client) *resourceProvider {
	return &resourceProvider{client: client}
}

func staticConfigResource() mcp.Resource {
	return mcp.Resource{
		URI:         "jira://config",
		Name:        "Jira configuration",
		Description: "Connection settings of this server",
		MimeType:    "application/json",
	}
}

// List enumerates the available resources. The live lookups behind
// the dynamic entries may fail; enumeration then degrades to the
// static config entry instead of failing outright.
func (p *resourceProvider) List(ctx context.Context) []mcp.Resource {
	resources := []mcp.Resource{staticConfigResource()}

	projects, err := p.client.GetProjects(ctx)
	if err != nil {
		logf("resource enumeration degraded: %v", err)
		return resources
	}
	me, err := p.client.Myself(ctx)
	if err != nil {
		logf("resource enumeration degraded: %v", err)
		return resources
	}

	resources = append(resources,
		mcp.Resource{
			URI:         "jira://current-user",
			Name:        fmt.Sprintf("Current user (%s)", me.DisplayName),
			Description: "The authenticated Jira user",
			MimeType:    "application/json",
		},
		mcp.Resource{
			URI:         "jira://priorities",
			Name:        "Priorities",
			Description: "All priorities configured on the instance",
			MimeType:    "application/json",
		},
		mcp.Resource{
			URI:         "jira://statuses",
			Name:        "Statuses",
			Description: "All statuses configured on the instance",
			MimeType:    "application/json",
		},
		mcp.Resource{
			URI:         "jira://fields",
			Name:        "Fields",
			Description: "Field definitions grouped by system/custom",
			MimeType:    "application/json",
		},
		mcp.Resource{
			URI:         "jira://link-types",
			Name:        "Issue link types",
			Description: "All issue link types",
			MimeType:    "application/json",
		},
		mcp.Resource{
			URI:         "jira://projects",
			Name:        "Projects",
			Description: "All projects visible to the current user",
			MimeType:    "application/json",
		},
		mcp.Resource{
			URI:         "jira://my-issues",
			Name:        "My open issues",
			Description: "Issues assigned to the current user, most recently updated first",
			MimeType:    "application/json",
		},
	)

	for i, proj := range projects {
		if i == maxProjectResources {
			break
		}
		resources = append(resources, mcp.Resource{
			URI:         "jira://project/" + proj.Key,
			Name:        fmt.Sprintf("Project %s (%s)", proj.Key, proj.Name),
			Description: "Project details, versions, components and creatable issue types",
			MimeType:    "application/json",
		})
	}

	return resources
}

// Read fetches one resource snapshot by URI.
func (p *resourceProvider) Read(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "jira://config":
		return marshalSnapshot(map[string]any{
			"baseUrl":    p.client.BaseURL(),
			"apiPath":    "/rest/api/2",
			"server":     serverName,
			"version":    serverVersion,
			"authScheme": "bearer",
		})
	case "jira://current-user":
		me, err := p.client.Myself(ctx)
		if err != nil {
			return "", err
		}
		return marshalSnapshot(me)
	case "jira://priorities":
		priorities, err := p.client.GetPriorities(ctx)
		if err != nil {
			return "", err
		}
		return marshalSnapshot(priorities)
	case "jira://statuses":
		statuses, err := p.client.GetStatuses(ctx)
		if err != nil {
			return "", err
		}
		return marshalSnapshot(statuses)
	case "jira://fields":
		return p.readFields(ctx)
	case "jira://link-types":
		linkTypes, err := p.client.GetLinkTypes(ctx)
		if err != nil {
			return "", err
		}
		return marshalSnapshot(linkTypes)
	case "jira://projects":
		projects, err := p.client.GetProjects(ctx)
		if err != nil {
			return "", err
		}
		return marshalSnapshot(projects)
	case "jira://my-issues":
		res, err := p.client.SearchIssues(ctx, myIssuesJQL, 0, 50, nil)
		if err != nil {
			return "", err
		}
		return marshalSnapshot(res)
	}

	if m := projectURIPattern.FindStringSubmatch(uri); m != nil {
		return p.readProjectBundle(ctx, m[1])
	}

	return "", fmt.Errorf("%w: %s", errUnknownResource, uri)
}

// readFields groups the field definitions by their custom flag.
func (p *resourceProvider) readFields(ctx context.Context) (string, error) {
	fields, err := p.client.GetFields(ctx)
	if err != nil {
		return "", err
	}
	system := make([]jira.Field, 0, len(fields))
	custom := make([]jira.Field, 0)
	for _, f := range fields {
		if f.Custom {
			custom = append(custom, f)
		} else {
			system = append(system, f)
		}
	}
	return marshalSnapshot(map[string]any{
		"system": system,
		"custom": custom,
	})
}

// readProjectBundle merges four independent reads into one snapshot.
// The sub-fetches run in parallel; ordering among them is irrelevant.
func (p *resourceProvider) readProjectBundle(ctx context.Context, key string) (string, error) {
	var (
		project    *jira.Project
		versions   []jira.Version
		components []jira.Component
		meta       *jira.CreateMeta
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = p.client.GetProject(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		versions, err = p.client.GetVersions(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		components, err = p.client.GetComponents(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		meta, err = p.client.GetCreateMeta(gctx, key, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	issueTypes := make([]jira.IssueType, 0, len(meta.IssueTypes))
	for _, it := range meta.IssueTypes {
		issueTypes = append(issueTypes, it.IssueType)
	}

	return marshalSnapshot(map[string]any{
		"project":    project,
		"versions":   versions,
		"components": components,
		"issueTypes": issueTypes,
	})
}

func marshalSnapshot(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Server) handleListResources(req *mcp.Request) *mcp.Response {
	result := mcp.ListResourcesResult{Resources: s.resources.List(s.ctx)}
	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}

func (s *Server) handleReadResource(req *mcp.Request) *mcp.Response {
	var params mcp.ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InvalidParams, "Invalid params: "+err.Error())
	}

	text, err := s.resources.Read(s.ctx, params.URI)
	if err != nil {
		if errors.Is(err, errUnknownResource) {
			return mcp.NewErrorResponse(req.ID, mcp.InvalidParams, err.Error())
		}
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}

	result := mcp.ReadResourceResult{
		Contents: []mcp.ContentBlock{{
			Type:     "text",
			Text:     text,
			URI:      params.URI,
			MimeType: "application/json",
		}},
	}
	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}
