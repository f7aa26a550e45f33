package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
)

// NewSniffgateMCPServer creates an MCP server with all sniffgate tools
// registered. projectPath is the working directory that toolchain
// discovery, config loading, and staged-set resolution default to.
//
// Toolchain discovery happens here, once, before any tool can run; a
// missing or outdated phpcs installation fails server construction.
func NewSniffgateMCPServer(projectPath string) (*server.MCPServer, error) {
	svcs, err := buildServices(context.Background(), projectPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"sniffgate",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath, svcs)

	return s, nil
}
