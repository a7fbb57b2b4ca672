package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"launchdash/internal/config"
	"launchdash/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	cfg        *config.Config
)

// flagKeys maps config keys to the flag names that override them. Commands
// that lack a flag simply leave the key to the file, env and defaults.
var flagKeys = map[string]string{
	"dataset.path":    "csv",
	"dataset.db":      "db",
	"server.bind":     "bind",
	"server.port":     "port",
	"server.compress": "compress",
	"dashboard.title": "title",
	"chart.width":     "width",
	"chart.height":    "height",
	"log.level":       "log-level",
	"log.format":      "log-format",
}

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "Interactive dashboard for SpaceX launch records",
	Long: `launchdash serves a single-page dashboard over a CSV of launch outcomes:
a launch-site dropdown drives a success pie chart, and a payload range
slider drives a payload vs. outcome scatter chart.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (YAML or JSON)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	flags := make(map[string]*pflag.Flag, len(flagKeys))
	for key, name := range flagKeys {
		flags[key] = cmd.Flags().Lookup(name)
	}
	c, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	logging.Init(level, c.Log.Format, cmd.ErrOrStderr())
	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
