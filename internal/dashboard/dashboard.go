// Package dashboard defines the launch dashboard: its page layout and the two
// reactive handlers that turn the current selection into chart figures.
package dashboard

import (
	"fmt"

	"launchdash/internal/figure"
	"launchdash/internal/launch"
)

var (
	siteValue    = Prop{ID: SiteDropdownID, Property: "value"}
	payloadValue = Prop{ID: PayloadSliderID, Property: "value"}
	pieFigure    = Prop{ID: PieChartID, Property: "figure"}
	scatterFig   = Prop{ID: ScatterChartID, Property: "figure"}
)

// Dashboard binds a loaded table to its layout and callbacks.
type Dashboard struct {
	table    *launch.Table
	layout   Component
	registry *Registry
}

// New builds the layout for t and registers the pie and scatter callbacks.
func New(t *launch.Table, opts LayoutOptions) *Dashboard {
	d := &Dashboard{
		table:    t,
		layout:   BuildLayout(t, opts),
		registry: NewRegistry(),
	}
	// Registration only fails on duplicate outputs, which these are not.
	_ = d.registry.Register(Callback{
		Output: pieFigure,
		Inputs: []Prop{siteValue},
		Fn:     d.updatePie,
	})
	_ = d.registry.Register(Callback{
		Output: scatterFig,
		Inputs: []Prop{siteValue, payloadValue},
		Fn:     d.updateScatter,
	})
	return d
}

// Table returns the dataset the dashboard serves.
func (d *Dashboard) Table() *launch.Table { return d.table }

// Layout returns the page tree.
func (d *Dashboard) Layout() Component { return d.layout }

// Registry returns the callback registry.
func (d *Dashboard) Registry() *Registry { return d.registry }

// Dispatch runs one callback update.
func (d *Dashboard) Dispatch(req UpdateRequest) (UpdateResponse, error) {
	return d.registry.Dispatch(req)
}

// Pie is PieChart over the dashboard's table.
func (d *Dashboard) Pie(site string) figure.Figure { return PieChart(d.table, site) }

// Scatter is ScatterChart over the dashboard's table.
func (d *Dashboard) Scatter(f Filter) figure.Figure {
	return ScatterChart(d.table, f.Site, f.Low, f.High)
}

func (d *Dashboard) updatePie(in Inputs) (figure.Figure, error) {
	site, err := d.site(in)
	if err != nil {
		return figure.Figure{}, err
	}
	return d.Pie(site), nil
}

func (d *Dashboard) updateScatter(in Inputs) (figure.Figure, error) {
	f := DefaultFilter(d.table)
	site, err := d.site(in)
	if err != nil {
		return figure.Figure{}, err
	}
	f.Site = site

	var bounds []float64
	ok, err := in.Decode(payloadValue, &bounds)
	if err != nil {
		return figure.Figure{}, err
	}
	if ok {
		if len(bounds) != 2 {
			return figure.Figure{}, fmt.Errorf("%s: %w: want [low, high], got %d values", payloadValue, ErrBadInput, len(bounds))
		}
		f.Low, f.High = bounds[0], bounds[1]
	}
	return d.Scatter(f), nil
}

func (d *Dashboard) site(in Inputs) (string, error) {
	site := launch.AllSites
	if _, err := in.Decode(siteValue, &site); err != nil {
		return "", err
	}
	return site, nil
}
