package main

import (
	"fmt"
	"log/slog"

	"launchdash/internal/config"
	"launchdash/internal/dashboard"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
	"launchdash/internal/render"
	"launchdash/internal/store"
)

// loadTable reads the dataset once: from the SQLite store when dataset.db is
// set, otherwise from the CSV at dataset.path.
func loadTable(c *config.Config) (*launch.Table, error) {
	log := logging.New("dataset")
	if c.Dataset.DB != "" {
		st, err := store.Open(c.Dataset.DB)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		t, err := st.LoadTable()
		if err != nil {
			return nil, err
		}
		if t.Len() == 0 {
			return nil, fmt.Errorf("store %s holds no launches; run 'launchdash import' first", c.Dataset.DB)
		}
		log.Info("loaded dataset", slog.String("db", c.Dataset.DB), slog.Int("records", t.Len()))
		return t, nil
	}

	t, err := launch.LoadFile(c.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	lo, hi := t.PayloadRange()
	log.Info("loaded dataset",
		slog.String("path", c.Dataset.Path),
		slog.Int("records", t.Len()),
		slog.Float64("min_payload", lo),
		slog.Float64("max_payload", hi))
	return t, nil
}

func newDashboard(c *config.Config, t *launch.Table) *dashboard.Dashboard {
	return dashboard.New(t, dashboard.LayoutOptions{
		Title:      c.Dashboard.Title,
		Sites:      c.Dashboard.Sites,
		SliderStep: c.Dashboard.SliderStep,
	})
}

func chartSize(c *config.Config) render.Size {
	return render.Size{Width: c.Chart.Width, Height: c.Chart.Height}
}
