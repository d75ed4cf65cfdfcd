// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/checkingin/internal/logging"
	"github.com/harperreed/checkingin/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants like Claude log check-ins and read your insights
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "checkingin": {
        "command": "checkingin",
        "args": ["mcp"],
        "env": { "GEMINI_API_KEY": "..." }
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  upload_screenshot      Extract metrics from a screenshot file
  add_journal_entry      Record today's mood and journal entry
  get_wellness_insights  Today's status, weekly trends, suggestions
  list_journal_entries   This week's entries with streak
  list_metrics           Recent daily physical metrics

AVAILABLE RESOURCES:

  checkingin://insights  Weekly wellness snapshot
  checkingin://today     Today's records`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(tracker)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logging.Info("mcp server shutting down")
			cancel()
		}()

		logging.Info("mcp server starting", "user", tracker.UserID())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
