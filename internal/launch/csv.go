package launch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Column headers of the launch CSV.
const (
	ColFlightNumber    = "Flight Number"
	ColLaunchSite      = "Launch Site"
	ColClass           = "class"
	ColPayloadMass     = "Payload Mass (kg)"
	ColBoosterVersion  = "Booster Version"
	ColBoosterCategory = "Booster Version Category"
)

var requiredColumns = []string{ColLaunchSite, ColClass, ColPayloadMass, ColBoosterCategory}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrNotText       = errors.New("dataset is not a text file")
)

// LoadFile reads a launch CSV from disk. Binary files are rejected before parsing.
func LoadFile(path string) (*Table, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect dataset type: %w", err)
	}
	if !isText(mime) {
		return nil, fmt.Errorf("%s (%s): %w", path, mime.String(), ErrNotText)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") || m.Is("text/csv") {
			return true
		}
	}
	return false
}

// ReadCSV parses launch records from r. The header row names the columns;
// column order is free and unknown columns (including the unnamed index
// column pandas writes) are ignored.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%q: %w", col, ErrMissingColumn)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("line %d: %w: %v", pe.Line, ErrMalformedRow, pe.Err)
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRow, err)
		}
		records = append(records, rec)
	}
	return NewTable(records), nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec Record
	rec.LaunchSite = get(ColLaunchSite)
	if rec.LaunchSite == "" {
		return rec, fmt.Errorf("empty %s", ColLaunchSite)
	}

	payload, err := strconv.ParseFloat(get(ColPayloadMass), 64)
	if err != nil {
		return rec, fmt.Errorf("%s: %w", ColPayloadMass, err)
	}
	if math.IsNaN(payload) || math.IsInf(payload, 0) {
		return rec, fmt.Errorf("%s must be finite, got %v", ColPayloadMass, payload)
	}
	rec.PayloadMassKg = payload

	class, err := strconv.ParseFloat(get(ColClass), 64)
	if err != nil {
		return rec, fmt.Errorf("%s: %w", ColClass, err)
	}
	if class != 0 && class != 1 {
		return rec, fmt.Errorf("%s must be 0 or 1, got %v", ColClass, class)
	}
	rec.Class = int(class)

	if s := get(ColFlightNumber); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", ColFlightNumber, err)
		}
		rec.FlightNumber = n
	}
	rec.BoosterVersion = get(ColBoosterVersion)
	rec.BoosterCategory = get(ColBoosterCategory)
	return rec, nil
}
