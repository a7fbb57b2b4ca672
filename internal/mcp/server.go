// Package mcp serves the launch dashboard figures to agents over the Model
// Context Protocol.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"launchdash/internal/dashboard"
	"launchdash/internal/figure"
	"launchdash/internal/launch"
	"launchdash/internal/logging"
	"launchdash/internal/summary"
)

// Server exposes the dashboard figures as MCP tools.
type Server struct {
	MCPServer *sdkmcp.Server

	dash *dashboard.Dashboard
}

// NewServer creates an MCP server with the chart and summary tools for d.
func NewServer(d *dashboard.Dashboard, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{dash: d}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "launchdash", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves over stdin/stdout until ctx is cancelled or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "pie_chart",
		Description: "Success pie for a launch site. site=ALL (default) gives successful launches per site; a single site gives its Success/Failure counts.",
	}, s.handlePieChart)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "scatter_chart",
		Description: "Payload mass vs. launch outcome, one series per booster version category, for launches with low <= payload <= high (kg).",
	}, s.handleScatterChart)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "dataset_summary",
		Description: "Per-site launch counts, success rates and payload ranges, with totals.",
	}, s.handleDatasetSummary)
}

// --- Tool input/output types ---

type pieChartInput struct {
	Site string `json:"site,omitempty" jsonschema:"launch site name, or ALL for every site"`
}

type scatterChartInput struct {
	Site string   `json:"site,omitempty" jsonschema:"launch site name, or ALL for every site"`
	Low  *float64 `json:"low,omitempty" jsonschema:"lower payload bound in kg (default: dataset minimum)"`
	High *float64 `json:"high,omitempty" jsonschema:"upper payload bound in kg (default: dataset maximum)"`
}

type figureOutput struct {
	Figure figure.Figure `json:"figure"`
	Empty  bool          `json:"empty"`
}

type datasetSummaryInput struct {
	Site string `json:"site,omitempty" jsonschema:"restrict to one launch site"`
}

type datasetSummaryOutput struct {
	Records int            `json:"records"`
	Sites   []string       `json:"sites"`
	Payload []float64      `json:"payload_range_kg"`
	Summary summary.Report `json:"summary"`
}

// --- Tool handlers ---

func (s *Server) handlePieChart(_ context.Context, _ *sdkmcp.CallToolRequest, input pieChartInput) (*sdkmcp.CallToolResult, figureOutput, error) {
	fig := s.dash.Pie(siteOrAll(input.Site))
	logging.New("mcp").Debug("pie_chart", "site", input.Site, "slices", len(fig.Slices))
	return nil, figureOutput{Figure: fig, Empty: fig.Empty()}, nil
}

func (s *Server) handleScatterChart(_ context.Context, _ *sdkmcp.CallToolRequest, input scatterChartInput) (*sdkmcp.CallToolResult, figureOutput, error) {
	f := dashboard.DefaultFilter(s.dash.Table())
	f.Site = siteOrAll(input.Site)
	if input.Low != nil {
		f.Low = *input.Low
	}
	if input.High != nil {
		f.High = *input.High
	}
	if f.Low > f.High {
		logging.New("mcp").Warn("scatter_chart: empty payload range", "low", f.Low, "high", f.High)
	}
	fig := s.dash.Scatter(f)
	return nil, figureOutput{Figure: fig, Empty: fig.Empty()}, nil
}

func (s *Server) handleDatasetSummary(_ context.Context, _ *sdkmcp.CallToolRequest, input datasetSummaryInput) (*sdkmcp.CallToolResult, datasetSummaryOutput, error) {
	t := s.dash.Table()
	if t.Len() == 0 {
		return nil, datasetSummaryOutput{}, fmt.Errorf("dataset is empty")
	}
	lo, hi := t.PayloadRange()
	return nil, datasetSummaryOutput{
		Records: t.Len(),
		Sites:   t.Sites(),
		Payload: []float64{lo, hi},
		Summary: summary.Compute(t, siteOrAll(input.Site)),
	}, nil
}

func siteOrAll(site string) string {
	if site == "" {
		return launch.AllSites
	}
	return site
}
