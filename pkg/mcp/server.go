package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/tlind/huemcp/pkg/bridge/schema"
	"github.com/tlind/huemcp/pkg/control"
)

// Server wraps the MCP server with the Hue command layer
type Server struct {
	mcpServer  *server.MCPServer
	controller *control.Controller
	validator  *schema.Validator
}

// NewServer creates a new MCP server for Hue light control
func NewServer(controller *control.Controller, validator *schema.Validator) *Server {
	s := &Server{
		controller: controller,
		validator:  validator,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"huemcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
	)

	// Register all tools and prompts
	s.registerTools()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
