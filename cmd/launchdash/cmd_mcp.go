package main

import (
	"context"

	"github.com/spf13/cobra"

	"launchdash/internal/logging"
	mcpserver "launchdash/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the dashboard figures as MCP tools over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the pie_chart,
scatter_chart and dataset_summary tools.

The server watches its parent process and exits when the client that
spawned it goes away.`,
	RunE: runMCP,
}

func init() {
	f := mcpCmd.Flags()
	f.String("csv", "", "launch records CSV")
	f.String("db", "", "read from this SQLite store instead of the CSV")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(newDashboard(cfg, tbl), version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting launchdash MCP server over stdio (parent watchdog active)")
	return srv.Run(ctx)
}
