// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents read and record habits over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/habits/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs habits as an MCP (Model Context Protocol) server, so LLM agents
like Claude can read profiles and streaks and toggle completions via stdio.

Logs go to stderr; stdout carries the protocol.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  habits mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "habits": {
  #       "command": "habits",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	logger := svc.Logger()
	server := mcpserver.NewMCPServer("habits", versionInfo.Version)
	mcp.RegisterTools(server, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("shutdown complete", zap.String("db", svc.Path()))
	return nil
}
