// Package summary aggregates per-site launch statistics for the CLI report
// and the MCP dataset_summary tool.
package summary

import (
	"math"

	"launchdash/internal/display"
	"launchdash/internal/format"
	"launchdash/internal/launch"
)

// SiteStats aggregates the launches of one site.
type SiteStats struct {
	Site       string  `json:"site"`
	Launches   int     `json:"launches"`
	Successes  int     `json:"successes"`
	MinPayload float64 `json:"min_payload_kg"`
	MaxPayload float64 `json:"max_payload_kg"`
}

// Failures is Launches minus Successes.
func (s SiteStats) Failures() int { return s.Launches - s.Successes }

// SuccessRate is Successes/Launches, 0 when there were no launches.
func (s SiteStats) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

func (s *SiteStats) add(r launch.Record) {
	if s.Launches == 0 {
		s.MinPayload, s.MaxPayload = r.PayloadMassKg, r.PayloadMassKg
	}
	s.Launches++
	if r.Success() {
		s.Successes++
	}
	s.MinPayload = math.Min(s.MinPayload, r.PayloadMassKg)
	s.MaxPayload = math.Max(s.MaxPayload, r.PayloadMassKg)
}

// Caption heads the ASCII rendering of a Report.
const Caption = "Launch records by site"

// Report is the per-site breakdown plus totals.
type Report struct {
	Sites []SiteStats `json:"sites"`
	Total SiteStats   `json:"total"`
}

// Compute aggregates t, restricted to site unless it is launch.AllSites.
// Sites appear in dataset order.
func Compute(t *launch.Table, site string) Report {
	rep := Report{Sites: []SiteStats{}, Total: SiteStats{Site: display.Site(launch.AllSites)}}
	index := make(map[string]int)
	for _, r := range t.Filter(launch.AtSite(site)) {
		i, ok := index[r.LaunchSite]
		if !ok {
			i = len(rep.Sites)
			index[r.LaunchSite] = i
			rep.Sites = append(rep.Sites, SiteStats{Site: r.LaunchSite})
		}
		rep.Sites[i].add(r)
		rep.Total.add(r)
	}
	return rep
}

// Render formats the report as a table.
func (r Report) Render(m format.Mode) string {
	tb := format.NewTable(m)
	tb.Title(Caption)
	tb.Header("Site", "Launches", "Successes", "Failures", "Success rate", "Min payload", "Max payload")
	for _, s := range r.Sites {
		tb.Row(row(s)...)
	}
	tb.Footer(row(r.Total)...)
	tb.AlignRight(2, 3, 4, 5, 6, 7)
	return tb.String()
}

func row(s SiteStats) []any {
	minP, maxP := "-", "-"
	if s.Launches > 0 {
		minP, maxP = display.Kilograms(s.MinPayload), display.Kilograms(s.MaxPayload)
	}
	return []any{
		s.Site,
		s.Launches,
		s.Successes,
		s.Failures(),
		display.Percent(s.Successes, s.Launches),
		minP,
		maxP,
	}
}
