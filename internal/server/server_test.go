package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golovatskygroup/mcp-jira/internal/jira"
	"github.com/golovatskygroup/mcp-jira/internal/registry"
	"github.com/golovatskygroup/mcp-jira/internal/tools"
	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

// newTestServer builds a server without a transport; dispatch tests
// call handleRequest directly.
func newTestServer(t *testing.T, fn http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(fn)
	t.Cleanup(srv.Close)

	client := jira.NewClient(srv.URL, "test-token")
	reg := registry.New()
	return &Server{
		registry:  reg,
		handler:   tools.NewHandler(reg, client),
		resources: newResourceProvider(client),
		ctx:       context.Background(),
	}
}

func request(t *testing.T, method, params string) *mcp.Request {
	t.Helper()
	req := &mcp.Request{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: method}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return req
}

func TestInitialize(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("initialize must not call Jira: %s", r.URL.Path)
	})

	resp := s.handleRequest(request(t, "initialize", `{}`))
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	var result mcp.InitializeResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Equal(t, protocolVer, result.ProtocolVersion)
	assert.Equal(t, serverName, result.ServerInfo.Name)
	assert.NotNil(t, result.Capabilities.Tools)
	assert.NotNil(t, result.Capabilities.Resources)
}

func TestInitializedNotificationHasNoResponse(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Nil(t, s.handleRequest(&mcp.Request{JSONRPC: "2.0", Method: "notifications/initialized"}))
}

func TestListToolsMatchesRegistry(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.handleRequest(request(t, "tools/list", ""))
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	var result mcp.ListToolsResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Len(t, result.Tools, len(registry.New().List()))
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.handleRequest(request(t, "prompts/list", ""))
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.MethodNotFound, resp.Error.Code)
}

func TestCallToolErrorMapping(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("rejected calls must not reach Jira: %s", r.URL.Path)
	})

	resp := s.handleRequest(request(t, "tools/call", `{"name": "jira_no_such_tool"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.MethodNotFound, resp.Error.Code)

	resp = s.handleRequest(request(t, "tools/call", `{"name": "jira_get_issue", "arguments": {"issueKey": 5}}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InvalidParams, resp.Error.Code)

	resp = s.handleRequest(request(t, "tools/call", `{"name": 5}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InvalidParams, resp.Error.Code)
}

func TestCallToolRemoteFailureIsToolResult(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resp := s.handleRequest(request(t, "tools/call", `{"name": "jira_get_issue", "arguments": {"issueKey": "PROJ-404"}}`))
	require.NotNil(t, resp)
	// A Jira-side failure is a successful JSON-RPC response carrying
	// an IsError result, not a protocol error.
	require.Nil(t, resp.Error)

	var result mcp.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.IsError)
}

func TestReadResourceUnknownURIIsInvalidParams(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.handleRequest(request(t, "resources/read", `{"uri": "jira://nope"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InvalidParams, resp.Error.Code)
}

func TestReadResourceWrapsContent(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.handleRequest(request(t, "resources/read", `{"uri": "jira://config"}`))
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	var result mcp.ReadResourceResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "jira://config", result.Contents[0].URI)
	assert.Equal(t, "application/json", result.Contents[0].MimeType)
}

func TestPing(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.handleRequest(request(t, "ping", ""))
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{}`, string(resp.Result))
}

func TestHandleRequestRecoversFromPanic(t *testing.T) {
	s := newTestServer(t, nil)
	s.resources = nil // force a nil dereference inside the handler

	resp := s.handleRequest(request(t, "resources/list", ""))
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InternalError, resp.Error.Code)
}
