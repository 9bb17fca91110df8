// Package aggregate derives per-month and per-parameter statistics from a
// subject's report history. Both operations are pure and re-derived from the
// entries on every call.
package aggregate

import (
	"sort"
	"time"

	"github.com/clinikit/labreport-tracker/constants"
	"github.com/clinikit/labreport-tracker/internal/entity"
)

// Stats holds the aggregate over one parameter's values within one month.
type Stats struct {
	Avg   float64
	Min   float64
	Max   float64
	Count int
}

// Point is one dated observation of a parameter.
type Point struct {
	Timestamp time.Time
	Value     float64
}

// MonthlySummary buckets entries by the YYYY-MM of their creation timestamp
// and computes avg/min/max per keyword over the numeric values present.
// A keyword with no contributing values in a month is omitted from that
// month's mapping entirely, so no bucket ever aggregates an empty set.
func MonthlySummary(entries []entity.ReportEntry, keywords []string) map[string]map[string]Stats {
	buckets := make(map[string]map[string][]float64)
	for _, e := range entries {
		t, err := e.Time()
		if err != nil {
			continue
		}
		month := t.Format(constants.MonthLayout)
		if buckets[month] == nil {
			buckets[month] = make(map[string][]float64)
		}
		for _, kw := range keywords {
			if v, ok := e.Results[kw]; ok {
				buckets[month][kw] = append(buckets[month][kw], v)
			}
		}
	}

	summary := make(map[string]map[string]Stats, len(buckets))
	for month, params := range buckets {
		if len(params) == 0 {
			continue
		}
		summary[month] = make(map[string]Stats, len(params))
		for kw, values := range params {
			summary[month][kw] = statsOf(values)
		}
	}
	return summary
}

// TimeSeries returns the dated values of one keyword in ascending timestamp
// order. Entries lacking the keyword are skipped rather than emitted as
// gaps, matching the monthly summary's skip-if-absent policy.
func TimeSeries(entries []entity.ReportEntry, keyword string) []Point {
	var points []Point
	for _, e := range entries {
		v, ok := e.Results[keyword]
		if !ok {
			continue
		}
		t, err := e.Time()
		if err != nil {
			continue
		}
		points = append(points, Point{Timestamp: t, Value: v})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points
}

// SortedMonths returns the summary's month keys in ascending order, for
// deterministic rendering and export.
func SortedMonths(summary map[string]map[string]Stats) []string {
	months := make([]string, 0, len(summary))
	for m := range summary {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

func statsOf(values []float64) Stats {
	s := Stats{Min: values[0], Max: values[0], Count: len(values)}
	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = sum / float64(len(values))
	return s
}
