package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"launchdash/internal/logging"
	"launchdash/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Loads the dataset once and serves the dashboard page, its callback
endpoint and server-rendered chart images until interrupted.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.Int("port", 8050, "HTTP port")
	f.String("bind", "127.0.0.1", "bind address")
	f.String("csv", "", "launch records CSV")
	f.String("db", "", "serve from this SQLite store instead of the CSV")
	f.Bool("compress", true, "brotli-compress responses for clients that accept it")
	f.String("title", "", "page heading")
	f.Int("width", 0, "server-rendered chart width in pixels")
	f.Int("height", 0, "server-rendered chart height in pixels")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logging.New("serve")

	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}

	srv := server.New(newDashboard(cfg, tbl), server.Config{
		Bind:     cfg.Server.Bind,
		Port:     cfg.Server.Port,
		Compress: cfg.Server.Compress,
		Title:    cfg.Dashboard.Title,
		Chart:    chartSize(cfg),
		Logger:   logging.New("http"),
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	log.Info("starting dashboard",
		slog.String("url", fmt.Sprintf("http://%s", cfg.Addr())),
		slog.Int("records", tbl.Len()))

	return srv.Start(ctx)
}
