// Package server runs the MCP request loop over stdio and routes
// protocol methods to the tool handler and the resource provider.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golovatskygroup/mcp-jira/internal/jira"
	"github.com/golovatskygroup/mcp-jira/internal/registry"
	"github.com/golovatskygroup/mcp-jira/internal/tools"
	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

const (
	serverName    = "mcp-jira"
	serverVersion = "1.0.0"
	protocolVer   = "2024-11-05"
)

// Server is the MCP server for one Jira instance.
type Server struct {
	transport *mcp.Transport
	registry  *registry.Registry
	handler   *tools.Handler
	resources *resourceProvider
	ctx       context.Context
}

// New creates a server bound to the given Jira client, reading from
// stdin and writing to stdout.
func New(ctx context.Context, client *jira.Client) *Server {
	reg := registry.New()
	return &Server{
		transport: mcp.NewTransport(os.Stdin, os.Stdout),
		registry:  reg,
		handler:   tools.NewHandler(reg, client),
		resources: newResourceProvider(client),
		ctx:       ctx,
	}
}

// Run serves requests until stdin closes or the context is canceled.
func (s *Server) Run() error {
	logf("serving %d tools", len(s.registry.List()))

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		req, err := s.transport.ReadMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			logf("error reading message: %v", err)
			continue
		}

		resp := s.handleRequest(req)
		if resp != nil {
			if err := s.transport.WriteResponse(resp); err != nil {
				logf("error writing response: %v", err)
			}
		}
	}
}

func (s *Server) handleRequest(req *mcp.Request) (resp *mcp.Response) {
	// One bad call must not take the process down; report and keep
	// serving.
	defer func() {
		if r := recover(); r != nil {
			logf("panic handling %s: %v", req.Method, r)
			resp = mcp.NewErrorResponse(req.ID, mcp.InternalError, fmt.Sprintf("internal error: %v", r))
		}
	}()

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(req)
	case "resources/list":
		return s.handleListResources(req)
	case "resources/read":
		return s.handleReadResource(req)
	case "ping":
		return s.handlePing(req)
	default:
		return mcp.NewErrorResponse(req.ID, mcp.MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req *mcp.Request) *mcp.Response {
	result := mcp.InitializeResult{
		ProtocolVersion: protocolVer,
		Capabilities: mcp.ServerCapabilities{
			Tools:     &mcp.ToolsCapability{},
			Resources: &mcp.ResourcesCapability{},
		},
		ServerInfo: mcp.ServerInfo{
			Name:    serverName,
			Version: serverVersion,
		},
		Instructions: "Jira MCP server. Tools cover issues, comments, transitions, watchers, links and metadata discovery. Use jira_get_create_meta before creating issues with custom fields.",
	}

	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}

func (s *Server) handleListTools(req *mcp.Request) *mcp.Response {
	result := mcp.ListToolsResult{Tools: s.registry.List()}
	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}

func (s *Server) handleCallTool(req *mcp.Request) *mcp.Response {
	var params mcp.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InvalidParams, "Invalid params: "+err.Error())
	}

	result, err := s.handler.Handle(s.ctx, params.Name, params.Arguments)
	if err != nil {
		switch {
		case errors.Is(err, tools.ErrUnknownTool):
			return mcp.NewErrorResponse(req.ID, mcp.MethodNotFound, err.Error())
		case errors.Is(err, tools.ErrInvalidArgs):
			return mcp.NewErrorResponse(req.ID, mcp.InvalidParams, err.Error())
		default:
			return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
		}
	}

	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}

func (s *Server) handlePing(req *mcp.Request) *mcp.Response {
	resp, _ := mcp.NewResponse(req.ID, map[string]any{})
	return resp
}

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[jira-mcp] "+format+"\n", args...)
}
