// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/swim/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log and read your swim times through
a standardized protocol. The server communicates via stdin/stdout. Tools act
on the logged-in swimmer unless a "user" argument is given.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "swim": {
        "command": "swim",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_time         Record a swim time
  list_times       List times with filters and sorting
  personal_bests   Fastest time per event
  event_history    Every time for one event with trend
  edit_best        Edit an event's personal best
  delete_best      Delete an event's personal best
  delete_time      Delete a time by ID
  trend            Improving, slowing down or stable

AVAILABLE RESOURCES:

  swim://bests     Personal bests
  swim://recent    Last 10 swims
  swim://summary   Counts, years and trends`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := currentUser()
		server, err := mcp.NewServer(repo, user, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
