// Package mcpserver exposes the tool registry over the Model Context
// Protocol so external agent runtimes can drive the governance desk. The
// server speaks stdio; every tool call is dispatched through the registry
// and the full result envelope travels back as the tool output.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harborcrew/quarterdeck/internal/tools"
)

const (
	serverName    = "quarterdeck"
	serverVersion = "1.0.0"
)

// Server wraps a tool registry in an MCP stdio server.
type Server struct {
	registry *tools.Registry
}

// New returns a server over the given registry.
func New(registry *tools.Registry) *Server {
	return &Server{registry: registry}
}

// Run serves the registry over stdio until ctx is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	server := s.build()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcpserver: %w", err)
	}
	return nil
}

func (s *Server) build() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, tool := range s.registry.Tools() {
		mcp.AddTool(server, &mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schemaFor(tool.Name),
		}, s.handler(tool.Name))
	}
	return server
}

// handler adapts a registry dispatch into an MCP tool result. Error
// envelopes are surfaced with IsError so clients can branch without parsing
// the payload.
func (s *Server) handler(name string) func(context.Context, *mcp.CallToolRequest, map[string]any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		result := s.registry.Dispatch(ctx, name, tools.Args(args))
		payload, err := json.Marshal(result)
		if err != nil {
			return nil, nil, fmt.Errorf("mcpserver: encode result for %s: %w", name, err)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
			IsError: !result.OK(),
		}, nil, nil
	}
}
