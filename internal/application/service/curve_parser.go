// Package service internal/application/service/curve_parser.go
package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
)

// maturityAliases maps each canonical maturity (in days) to the feed field
// names that have carried it over time, tried in order. The XML/OData feed
// uses the BC_* constant-maturity names; the CSV-era exports use the short
// "1 Mo"/"1 Yr" column headings. A maturity with no matching field in an
// entry is simply absent, not an error.
//
// The 120-day (4-month) point is not on the reference grid but is parsed
// like any other observation and participates in interpolation.
var maturityAliases = []struct {
	days    int
	aliases []string
}{
	{30, []string{"BC_1MONTH", "1 Mo"}},
	{60, []string{"BC_2MONTH", "2 Mo"}},
	{91, []string{"BC_3MONTH", "3 Mo"}},
	{120, []string{"BC_4MONTH", "4 Mo"}},
	{182, []string{"BC_6MONTH", "6 Mo"}},
	{365, []string{"BC_1YEAR", "1 Yr"}},
	{730, []string{"BC_2YEAR", "2 Yr"}},
	{1095, []string{"BC_3YEAR", "3 Yr"}},
	{1825, []string{"BC_5YEAR", "5 Yr"}},
	{2555, []string{"BC_7YEAR", "7 Yr"}},
	{3650, []string{"BC_10YEAR", "10 Yr"}},
	{7300, []string{"BC_20YEAR", "20 Yr"}},
	{10950, []string{"BC_30YEAR", "30 Yr"}},
}

// dateAliases are the field names that may carry an entry's observation date
var dateAliases = []string{"NEW_DATE", "Date"}

// dateLayouts are the date formats seen across feed eras
var dateLayouts = []string{"2006-01-02T15:04:05", "2006-01-02", "01/02/2006"}

// CurveParser turns one raw feed entry into a curve snapshot
type CurveParser struct{}

// NewCurveParser creates a new curve parser
func NewCurveParser() *CurveParser {
	return &CurveParser{}
}

// ParseEntry normalizes a raw entry into a Snapshot.
//
// A missing or unparseable date fails with entity.ErrMalformedEntry; an
// entry whose yield fields are all absent, empty, "N/A", or non-numeric
// fails with entity.ErrEmptyObservation. Both are per-entry conditions that
// the caller reports and skips without aborting the batch.
func (p *CurveParser) ParseEntry(entry entity.RawEntry) (*entity.Snapshot, error) {
	date, err := p.parseDate(entry)
	if err != nil {
		return nil, err
	}

	points := make([]entity.CurvePoint, 0, len(maturityAliases))
	for _, m := range maturityAliases {
		yield, ok := p.lookupYield(entry, m.aliases)
		if !ok {
			continue
		}
		points = append(points, entity.CurvePoint{
			MaturityDays: m.days,
			YieldPct:     yield,
			IsObserved:   true,
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("entry for %s has no usable yields: %w",
			date.Format("2006-01-02"), entity.ErrEmptyObservation)
	}

	return entity.NewSnapshot(date, points)
}

// parseDate extracts the mandatory observation date from an entry
func (p *CurveParser) parseDate(entry entity.RawEntry) (time.Time, error) {
	for _, field := range dateAliases {
		raw, ok := entry[field]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				// Normalize to midnight UTC so store lookups by calendar
				// date compare equal regardless of the feed's time part
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", raw, entity.ErrMalformedEntry)
	}
	return time.Time{}, fmt.Errorf("entry has no date field: %w", entity.ErrMalformedEntry)
}

// lookupYield tries each alias in order and returns the first usable value.
// Empty, "N/A", and non-numeric values count as absent.
func (p *CurveParser) lookupYield(entry entity.RawEntry, aliases []string) (float64, bool) {
	for _, field := range aliases {
		raw, ok := entry[field]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.EqualFold(raw, "N/A") {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
