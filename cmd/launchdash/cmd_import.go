package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"launchdash/internal/launch"
	"launchdash/internal/logging"
	"launchdash/internal/store"
)

var importDB string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the launch CSV into the SQLite store",
	Long: `Parses the CSV at dataset.path and replaces the contents of the store
in one transaction. 'serve --db' and 'summary --db' then read from the store.`,
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.String("csv", "", "launch records CSV")
	f.StringVar(&importDB, "to", store.DefaultDBPath, "store DB path")
}

func runImport(cmd *cobra.Command, _ []string) error {
	log := logging.New("import")

	tbl, err := launch.LoadFile(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	st, err := store.Open(importDB)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ReplaceLaunches(tbl, filepath.Base(cfg.Dataset.Path)); err != nil {
		return err
	}
	log.Info("imported dataset", slog.String("db", importDB), slog.Int("records", tbl.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d launches from %s into %s\n", tbl.Len(), cfg.Dataset.Path, importDB)
	return nil
}
