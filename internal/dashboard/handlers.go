package dashboard

import (
	"cmp"
	"slices"

	"launchdash/internal/display"
	"launchdash/internal/figure"
	"launchdash/internal/launch"
)

// Axis labels of the scatter chart; they name the CSV columns they plot.
const (
	ScatterXLabel = launch.ColPayloadMass
	ScatterYLabel = launch.ColClass
)

// Filter is the UI selection passed to the handlers on every change.
type Filter struct {
	Site string  `json:"site"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// PieChart builds the success pie for a site selection.
//
// For AllSites each slice is one launch site valued by its number of successful
// launches. For a single site the slices are the outcome classes valued by
// their row counts. An unknown site yields a figure without slices.
func PieChart(t *launch.Table, site string) figure.Figure {
	if site == launch.AllSites {
		successes := make(map[string]int)
		for _, r := range t.Filter(launch.Successful()) {
			successes[r.LaunchSite]++
		}
		fig := figure.Figure{Kind: figure.Pie, Title: "Total Success Launches by Site"}
		for _, s := range t.Sites() {
			fig.Slices = append(fig.Slices, figure.Slice{Label: s, Value: float64(successes[s])})
		}
		return fig
	}

	counts := make(map[int]int)
	for _, r := range t.Filter(launch.AtSite(site)) {
		counts[r.Class]++
	}
	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	// value_counts order: most frequent first, success before failure on ties.
	slices.SortFunc(classes, func(a, b int) int {
		if n := cmp.Compare(counts[b], counts[a]); n != 0 {
			return n
		}
		return cmp.Compare(b, a)
	})

	fig := figure.Figure{Kind: figure.Pie, Title: "Success vs Failed Launches for Site " + site}
	// Slices are named by outcome word rather than the raw 0/1 class value.
	for _, c := range classes {
		fig.Slices = append(fig.Slices, figure.Slice{Label: display.Outcome(c), Value: float64(counts[c])})
	}
	return fig
}

// ScatterChart plots payload against outcome for launches with
// low <= payload <= high, restricted to site unless it is AllSites.
// Points are grouped into one series per booster version category.
func ScatterChart(t *launch.Table, site string, low, high float64) figure.Figure {
	fig := figure.Figure{
		Kind:   figure.Scatter,
		Title:  "Payload vs. Outcome for All Sites",
		XLabel: ScatterXLabel,
		YLabel: ScatterYLabel,
	}
	if site != launch.AllSites {
		fig.Title = "Payload vs. Outcome for Site " + site
	}

	index := make(map[string]int)
	for _, r := range t.Filter(launch.PayloadBetween(low, high), launch.AtSite(site)) {
		i, ok := index[r.BoosterCategory]
		if !ok {
			i = len(fig.Series)
			index[r.BoosterCategory] = i
			fig.Series = append(fig.Series, figure.Series{Name: r.BoosterCategory})
		}
		fig.Series[i].Points = append(fig.Series[i].Points, figure.Point{X: r.PayloadMassKg, Y: float64(r.Class)})
	}
	return fig
}
