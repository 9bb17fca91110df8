package entity

import (
	"time"

	"github.com/clinikit/labreport-tracker/constants"
)

// ReportEntry is one persisted record of values extracted from a single
// uploaded document. The JSON field names are the on-disk history format and
// must not change.
type ReportEntry struct {
	Timestamp  string             `json:"timestamp"`
	Filename   string             `json:"filename"`
	AssignedTo string             `json:"assigned_to"`
	ReportDate string             `json:"report_date,omitempty"`
	Results    map[string]float64 `json:"results"`
}

// Time parses the entry's creation timestamp.
func (e ReportEntry) Time() (time.Time, error) {
	return time.Parse(constants.TimestampLayout, e.Timestamp)
}
