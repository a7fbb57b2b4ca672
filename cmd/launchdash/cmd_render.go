package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"

	"launchdash/internal/dashboard"
	"launchdash/internal/display"
	"launchdash/internal/figure"
	"launchdash/internal/format"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
	"launchdash/internal/render"
	"launchdash/internal/summary"
)

var (
	renderOut  string
	renderSite string
	renderLow  float64
	renderHigh float64
	renderPNG  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a static snapshot of the dashboard",
	Long: `Evaluates both charts for one selection and writes index.html (with the
charts inlined as SVG), pie.svg and scatter.svg to --out. --low and --high
default to the dataset's payload range.`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderOut, "out", "snapshot", "output directory")
	f.StringVar(&renderSite, "site", launch.AllSites, "selected launch site")
	f.Float64Var(&renderLow, "low", 0, "lower payload bound in kg")
	f.Float64Var(&renderHigh, "high", 0, "upper payload bound in kg")
	f.BoolVar(&renderPNG, "png", false, "also write pie.png and scatter.png")
	f.String("csv", "", "launch records CSV")
	f.String("db", "", "read from this SQLite store instead of the CSV")
	f.String("title", "", "page heading")
	f.Int("width", 0, "chart width in pixels")
	f.Int("height", 0, "chart height in pixels")
}

var snapshotTmpl = template.Must(template.New("snapshot").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1 style="text-align: center; color: #503D36; font-size: 40px">{{.Title}}</h1>
<p>Launch site: <strong>{{.Site}}</strong></p>
<div id="success-pie-chart">{{.Pie}}</div>
<p>Payload range (Kg): {{.Low}} to {{.High}}</p>
<div id="success-payload-scatter-chart">{{.Scatter}}</div>
<pre>{{.Summary}}</pre>
</body></html>`))

type snapshot struct {
	Title     string
	Site      string
	Low, High string
	Pie       template.HTML
	Scatter   template.HTML
	Summary   string
}

func runRender(cmd *cobra.Command, _ []string) error {
	log := logging.New("render")

	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}
	d := newDashboard(cfg, tbl)

	sel := dashboard.DefaultFilter(tbl)
	sel.Site = renderSite
	if cmd.Flags().Changed("low") {
		sel.Low = renderLow
	}
	if cmd.Flags().Changed("high") {
		sel.High = renderHigh
	}

	size := chartSize(cfg)
	charts := map[string]figure.Figure{
		"pie":     d.Pie(sel.Site),
		"scatter": d.Scatter(sel),
	}
	svgs := make(map[string][]byte, len(charts))
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for name, fig := range charts {
		svg, err := render.Bytes(fig, render.SVG, size)
		if err != nil {
			return err
		}
		svgs[name] = svg
		if err := writeFile(filepath.Join(renderOut, name+".svg"), svg); err != nil {
			return err
		}
		if renderPNG {
			png, err := render.Bytes(fig, render.PNG, size)
			if err != nil {
				return err
			}
			if err := writeFile(filepath.Join(renderOut, name+".png"), png); err != nil {
				return err
			}
		}
	}

	var page bytes.Buffer
	err = snapshotTmpl.Execute(&page, snapshot{
		Title:   cfg.Dashboard.Title,
		Site:    display.Site(sel.Site),
		Low:     display.Kilograms(sel.Low),
		High:    display.Kilograms(sel.High),
		Pie:     template.HTML(svgs["pie"]),
		Scatter: template.HTML(svgs["scatter"]),
		Summary: summary.Compute(tbl, sel.Site).Render(format.ASCII),
	})
	if err != nil {
		return fmt.Errorf("render snapshot page: %w", err)
	}
	index := filepath.Join(renderOut, "index.html")
	if err := writeFile(index, gohtml.FormatBytes(page.Bytes())); err != nil {
		return err
	}

	log.Info("wrote snapshot", slog.String("dir", renderOut), slog.String("site", sel.Site),
		slog.Float64("low", sel.Low), slog.Float64("high", sel.High))
	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\n", index)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
