package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"launchdash/internal/format"
	"launchdash/internal/launch"
	"launchdash/internal/summary"
)

var (
	summarySite     string
	summaryMarkdown bool
	summaryCSV      bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-site launch statistics",
	RunE:  runSummary,
}

func init() {
	f := summaryCmd.Flags()
	f.StringVar(&summarySite, "site", launch.AllSites, "restrict to one launch site")
	f.BoolVar(&summaryMarkdown, "markdown", false, "print a Markdown table")
	f.BoolVar(&summaryCSV, "csv-out", false, "print CSV")
	f.String("csv", "", "launch records CSV")
	f.String("db", "", "read from this SQLite store instead of the CSV")
	summaryCmd.MarkFlagsMutuallyExclusive("markdown", "csv-out")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}
	mode := format.ASCII
	switch {
	case summaryMarkdown:
		mode = format.Markdown
	case summaryCSV:
		mode = format.CSV
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Compute(tbl, summarySite).Render(mode))
	return err
}
