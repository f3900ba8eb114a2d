// Package mcp exposes the flight tools over the Model Context Protocol so
// external agents can call them directly, without going through the chat loop.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/skydeck/skydeck/internal/domain/tool"
	"github.com/skydeck/skydeck/internal/port/database"
)

// ServerConfig holds the MCP server settings.
type ServerConfig struct {
	Addr    string
	Name    string
	Version string
	APIKey  string
}

// ToolExecutor runs a named tool with decoded arguments.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) (any, error)
}

// ServerDeps are the collaborators the MCP server needs. Tools are executed
// through Exec; Store backs the read-only resources.
type ServerDeps struct {
	Tools []tool.Spec
	Exec  ToolExecutor
	Store database.Store
}

// Server wraps an MCP server with a streamable HTTP transport.
type Server struct {
	cfg        ServerConfig
	deps       ServerDeps
	mcpServer  *mcpserver.MCPServer
	httpServer *http.Server
}

// NewServer creates the MCP server and registers all tools and resources.
func NewServer(cfg ServerConfig, deps ServerDeps) *Server {
	s := &Server{
		cfg:  cfg,
		deps: deps,
		mcpServer: mcpserver.NewMCPServer(cfg.Name, cfg.Version,
			mcpserver.WithToolCapabilities(true),
			mcpserver.WithResourceCapabilities(true, false),
		),
	}
	s.registerTools()
	s.registerResources()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer)
	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: AuthMiddleware(cfg.APIKey, streamable),
	}
	return s
}

// MCPServer returns the underlying MCP server, mainly for inspection in tests.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// Start begins serving MCP over HTTP on the configured address.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("mcp server failed", "error", err)
		}
	}()
	slog.Info("mcp server listening", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts down the MCP HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func toolResultJSON(data string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(data)
}
