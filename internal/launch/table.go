// Package launch holds the launch-record dataset: the record type, the
// immutable in-memory table and the CSV loader that builds it.
package launch

import (
	"math"
	"slices"
)

// AllSites is the site selection that disables site filtering.
const AllSites = "ALL"

// Record is one launch row.
type Record struct {
	FlightNumber    int     `json:"flight_number" db:"flight_number"`
	LaunchSite      string  `json:"launch_site" db:"launch_site"`
	PayloadMassKg   float64 `json:"payload_mass_kg" db:"payload_mass_kg"`
	Class           int     `json:"class" db:"class"`
	BoosterVersion  string  `json:"booster_version" db:"booster_version"`
	BoosterCategory string  `json:"booster_category" db:"booster_category"`
}

// Success reports whether the launch outcome class is 1.
func (r Record) Success() bool { return r.Class == 1 }

// Table is the read-only dataset. It is built once and never mutated, so it is
// safe to share across concurrent request handlers.
type Table struct {
	records    []Record
	sites      []string
	minPayload float64
	maxPayload float64
}

// NewTable builds a Table from records. The slice is copied.
func NewTable(records []Record) *Table {
	t := &Table{records: slices.Clone(records)}
	seen := make(map[string]bool)
	t.minPayload, t.maxPayload = math.Inf(1), math.Inf(-1)
	for _, r := range t.records {
		if !seen[r.LaunchSite] {
			seen[r.LaunchSite] = true
			t.sites = append(t.sites, r.LaunchSite)
		}
		t.minPayload = math.Min(t.minPayload, r.PayloadMassKg)
		t.maxPayload = math.Max(t.maxPayload, r.PayloadMassKg)
	}
	if len(t.records) == 0 {
		t.minPayload, t.maxPayload = 0, 0
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns a copy of all records in load order.
func (t *Table) Records() []Record { return slices.Clone(t.records) }

// Sites returns the distinct launch sites in first-appearance order.
func (t *Table) Sites() []string { return slices.Clone(t.sites) }

// PayloadRange returns the min and max payload mass. Both are 0 for an empty table.
func (t *Table) PayloadRange() (lo, hi float64) { return t.minPayload, t.maxPayload }

// Filter returns the records matching every predicate, in load order.
func (t *Table) Filter(preds ...Predicate) []Record {
	var out []Record
rows:
	for _, r := range t.records {
		for _, p := range preds {
			if !p(r) {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}

// Predicate selects records.
type Predicate func(Record) bool

// AtSite matches records launched from site. AllSites matches everything.
func AtSite(site string) Predicate {
	if site == AllSites {
		return func(Record) bool { return true }
	}
	return func(r Record) bool { return r.LaunchSite == site }
}

// PayloadBetween matches records with low <= payload <= high.
func PayloadBetween(low, high float64) Predicate {
	return func(r Record) bool { return r.PayloadMassKg >= low && r.PayloadMassKg <= high }
}

// Successful matches records with outcome class 1.
func Successful() Predicate {
	return func(r Record) bool { return r.Success() }
}
