// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in chart labels, CLI output and MCP responses.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Outcome classes ---

var outcomes = map[int]string{
	0: "Failure",
	1: "Success",
}

// Outcome returns the human-readable name for an outcome class.
// Unknown classes are returned as their decimal form.
func Outcome(class int) string {
	if name, ok := outcomes[class]; ok {
		return name
	}
	return strconv.Itoa(class)
}

// --- Sites ---

// allSites mirrors launch.AllSites; display stays dependency-free.
const allSites = "ALL"

// Site returns the dropdown label for a site selection.
func Site(site string) string {
	if site == allSites {
		return "All Sites"
	}
	return site
}

// --- Quantities ---

// Kilograms formats a payload mass as "4,230 kg", dropping a zero fraction.
func Kilograms(kg float64) string {
	s := strconv.FormatFloat(kg, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	b.WriteString(" kg")
	return b.String()
}

// Percent formats a ratio in [0,1] as "42.9%". A zero denominator renders "-".
func Percent(num, den int) string {
	if den == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(num)/float64(den))
}
