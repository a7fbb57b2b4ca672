// Package figure is the chart description exchanged between the reactive
// handlers, the HTTP API, the renderer and the MCP tools.
package figure

// Kind is the chart type.
type Kind string

const (
	Pie     Kind = "pie"
	Scatter Kind = "scatter"
)

// Figure is a renderer-agnostic chart description.
type Figure struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	Slices []Slice  `json:"slices,omitempty"`
	Series []Series `json:"series,omitempty"`
}

// Slice is one pie wedge.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one coloured group of scatter points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is a scatter coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case Pie:
		for _, s := range f.Slices {
			if s.Value != 0 {
				return false
			}
		}
		return true
	default:
		return f.PointCount() == 0
	}
}

// Total sums the slice values.
func (f Figure) Total() float64 {
	var sum float64
	for _, s := range f.Slices {
		sum += s.Value
	}
	return sum
}

// PointCount counts scatter points across all series.
func (f Figure) PointCount() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}
