// Package render draws figures as SVG or PNG images with go-chart.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"launchdash/internal/figure"
)

// Format is an image encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" or "png".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case SVG, PNG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// ContentType is the HTTP media type of the encoding.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == PNG {
		return chart.PNG
	}
	return chart.SVG
}

// Size is the image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the dashboard graph containers.
var DefaultSize = Size{Width: 900, Height: 450}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}
	return s
}

// Render encodes fig to w. Empty figures render as a titled placeholder.
func Render(w io.Writer, fig figure.Figure, f Format, size Size) error {
	size = size.orDefault()
	var err error
	switch fig.Kind {
	case figure.Pie:
		err = pie(fig, size).Render(f.provider(), w)
	case figure.Scatter:
		ch := scatter(fig, size)
		err = ch.Render(f.provider(), w)
	default:
		return fmt.Errorf("render: unknown figure kind %q", fig.Kind)
	}
	if err != nil {
		return fmt.Errorf("render %s %s: %w", fig.Kind, f, err)
	}
	return nil
}

// Bytes renders fig into memory, so a failed render never leaves a partial
// image on an HTTP response.
func Bytes(fig figure.Figure, f Format, size Size) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, fig, f, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var titleStyle = chart.Style{FontSize: 14}

func pie(fig figure.Figure, size Size) chart.PieChart {
	pc := chart.PieChart{
		Title:      fig.Title,
		TitleStyle: titleStyle,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
	}
	for _, s := range fig.Slices {
		if s.Value <= 0 {
			continue
		}
		pc.Values = append(pc.Values, chart.Value{
			Label: fmt.Sprintf("%s (%g)", s.Label, s.Value),
			Value: s.Value,
		})
	}
	if len(pc.Values) == 0 {
		pc.Values = []chart.Value{{
			Label: "No data",
			Value: 1,
			Style: chart.Style{FillColor: chart.ColorLightGray, FontColor: chart.ColorBlack},
		}}
	}
	return pc
}

// pointStyle renders dots only, no connecting line.
func pointStyle(i int) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    chart.GetDefaultColor(i),
	}
}

func scatter(fig figure.Figure, size Size) *chart.Chart {
	lo, hi := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
			lo, hi = math.Min(lo, p.X), math.Max(hi, p.X)
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: pointStyle(i)})
	}

	empty := len(series) == 0
	if empty {
		lo, hi = 0, 1
		// go-chart refuses to draw without a series; this one has neither line nor dots.
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{lo, hi},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: chart.Disabled},
		})
	}
	xr := paddedRange(lo, hi)

	ch := &chart.Chart{
		Title:      fig.Title,
		TitleStyle: titleStyle,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  fig.XLabel,
			Range: &xr,
		},
		YAxis: chart.YAxis{
			Name:  fig.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	if !empty {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch
}

// paddedRange widens [lo, hi] by 5% each side; a single value gets ±500 kg.
func paddedRange(lo, hi float64) chart.ContinuousRange {
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 500
	}
	return chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
