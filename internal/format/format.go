// Package format renders terminal and Markdown tables for CLI reports.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // box-drawn terminal table
	Markdown             // GitHub-flavoured Markdown table
	CSV                  // comma separated, for piping into other tools
)

// Table collects rows and renders them in one Mode.
type Table struct {
	w    table.Writer
	mode Mode
}

// NewTable returns an empty table rendering in m.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{w: w, mode: m}
}

// Title sets a caption shown above ASCII tables. Markdown and CSV output
// carry no caption.
func (t *Table) Title(s string) {
	if t.mode == ASCII {
		t.w.SetTitle(s)
	}
}

// Header sets the column headers.
func (t *Table) Header(cols ...string) { t.w.AppendHeader(toRow(cols...)) }

// Row appends a data row.
func (t *Table) Row(vals ...any) { t.w.AppendRow(table.Row(vals)) }

// Footer appends a totals row.
func (t *Table) Footer(vals ...any) { t.w.AppendFooter(table.Row(vals)) }

// AlignRight right-aligns the given 1-based columns; numeric columns read better that way.
func (t *Table) AlignRight(cols ...int) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{Number: c, Align: text.AlignRight, AlignFooter: text.AlignRight}
	}
	t.w.SetColumnConfigs(cfgs)
}

// String renders the table.
func (t *Table) String() string {
	switch t.mode {
	case Markdown:
		return t.w.RenderMarkdown()
	case CSV:
		return t.w.RenderCSV()
	default:
		return t.w.Render()
	}
}

func toRow(cols ...string) table.Row {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}
