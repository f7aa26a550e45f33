package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/sniffgate/sniffgate/internal/adapters/inbound/mcp"
)

func newMCPCmd(path *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the sniffgate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(path))
	return cmd
}

func newMCPServeCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the sniffgate MCP server (stdio)",
		Long:  "Start the sniffgate MCP server using stdio transport, exposing check, fix, and pre-commit tools to AI coding assistants.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := mcpadapter.NewSniffgateMCPServer(*path)
			if err != nil {
				return err
			}
			return server.ServeStdio(s)
		},
	}
}
