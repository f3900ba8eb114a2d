package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/skydeck/skydeck/internal/domain"
	"github.com/skydeck/skydeck/internal/domain/tool"
)

// registerTools registers every tool spec on the server. Tools are built from
// the same registry the chat loop advertises to the model, so the two
// surfaces never drift.
func (s *Server) registerTools() {
	serverTools := make([]mcpserver.ServerTool, 0, len(s.deps.Tools))
	for _, spec := range s.deps.Tools {
		serverTools = append(serverTools, s.serverTool(spec))
	}
	s.mcpServer.AddTools(serverTools...)
}

func (s *Server) serverTool(spec tool.Spec) mcpserver.ServerTool {
	opts := []mcplib.ToolOption{
		mcplib.WithDescription(spec.Description),
	}
	for _, p := range spec.Params {
		propOpts := []mcplib.PropertyOption{
			mcplib.Description(p.Description),
		}
		if p.Required {
			propOpts = append(propOpts, mcplib.Required())
		}
		switch p.Type {
		case "number":
			opts = append(opts, mcplib.WithNumber(p.Name, propOpts...))
		default:
			opts = append(opts, mcplib.WithString(p.Name, propOpts...))
		}
	}

	name := spec.Name
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool(name, opts...),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			return s.handleTool(ctx, name, req.GetArguments())
		},
	}
}

func (s *Server) handleTool(ctx context.Context, name string, args map[string]any) (*mcplib.CallToolResult, error) {
	if s.deps.Exec == nil {
		return mcplib.NewToolResultError("tool executor not configured"), nil
	}
	result, err := s.deps.Exec.Execute(ctx, name, args)
	if err != nil {
		if domain.IsToolError(err) {
			return mcplib.NewToolResultError(err.Error()), nil
		}
		return mcplib.NewToolResultErrorFromErr("tool execution failed", err), nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal result", err), nil
	}
	return toolResultJSON(string(data)), nil
}
