// Package compare produces the ordered, directional diff between two report
// entries.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/entity"
)

// Trend marks the direction of change between two compared values. A
// parameter present on only one side never carries a directional claim.
type Trend string

const (
	TrendUp   Trend = "increase"
	TrendDown Trend = "decrease"
	TrendFlat Trend = "none"
)

// Marker renders the trend as the symbol shown next to the right-hand value.
func (t Trend) Marker() string {
	switch t {
	case TrendUp:
		return "⬆"
	case TrendDown:
		return "⬇"
	default:
		return "➖"
	}
}

// NAValue is rendered when a parameter is present in only one of the reports.
const NAValue = "N/A"

// Row is one parameter's comparison across the two reports. Left and Right
// are already formatted: two decimal places for numeric values, the literal
// sentinel otherwise.
type Row struct {
	Parameter string
	Left      string
	Right     string
	Trend     Trend
}

// ComparisonTable is the diff between two reports, earliest on the left.
type ComparisonTable struct {
	LeftLabel  string
	RightLabel string
	Rows       []Row
}

// Reports diffs two history entries. The inputs are reordered by ascending
// timestamp, so the earlier report is always the left column regardless of
// argument order. Rows cover the union of both parameter sets, sorted
// lexicographically. Pure function; only malformed inputs produce an error.
func Reports(a, b entity.ReportEntry) (*ComparisonTable, error) {
	if err := checkEntry(a); err != nil {
		return nil, err
	}
	if err := checkEntry(b); err != nil {
		return nil, err
	}
	// The timestamp layout sorts chronologically as a string.
	if b.Timestamp < a.Timestamp {
		a, b = b, a
	}

	params := make([]string, 0, len(a.Results)+len(b.Results))
	seen := make(map[string]struct{})
	for p := range a.Results {
		seen[p] = struct{}{}
		params = append(params, p)
	}
	for p := range b.Results {
		if _, ok := seen[p]; !ok {
			params = append(params, p)
		}
	}
	sort.Strings(params)

	table := &ComparisonTable{
		LeftLabel:  entryLabel(a),
		RightLabel: entryLabel(b),
		Rows:       make([]Row, 0, len(params)),
	}
	for _, p := range params {
		lv, lok := a.Results[p]
		rv, rok := b.Results[p]

		row := Row{Parameter: p, Left: NAValue, Right: NAValue, Trend: TrendFlat}
		if lok {
			row.Left = fmt.Sprintf("%.2f", lv)
		}
		if rok {
			row.Right = fmt.Sprintf("%.2f", rv)
		}
		if lok && rok {
			switch {
			case rv > lv:
				row.Trend = TrendUp
			case rv < lv:
				row.Trend = TrendDown
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Render formats the table as aligned text, one parameter per line.
func (c *ComparisonTable) Render() string {
	var b strings.Builder
	b.WriteString("--- Report Comparison ---\n\n")
	b.WriteString(fmt.Sprintf("%-25s %-30s %-30s\n", "Parameter", c.LeftLabel, c.RightLabel))
	b.WriteString(strings.Repeat("-", 90) + "\n")
	for _, r := range c.Rows {
		right := r.Right
		if r.Trend != TrendFlat {
			right = right + " " + r.Trend.Marker()
		}
		b.WriteString(fmt.Sprintf("%-25s %-30s %-30s\n", r.Parameter, r.Left, right))
	}
	return b.String()
}

func entryLabel(e entity.ReportEntry) string {
	date := e.ReportDate
	if date == "" {
		date = NAValue
	}
	return fmt.Sprintf("%s (%s)", e.Filename, date)
}

func checkEntry(e entity.ReportEntry) error {
	if strings.TrimSpace(e.Timestamp) == "" {
		return common.NewAppError("COMPARE_INPUT", "entry missing timestamp", common.ErrInvalidInput)
	}
	if e.Results == nil {
		return common.NewAppError("COMPARE_INPUT", "entry missing results", common.ErrInvalidInput)
	}
	return nil
}
