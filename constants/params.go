package constants

// DefaultKeywords seeds the keyword store on first run.
var DefaultKeywords = []string{"Hemoglobin", "Platelet count", "Glucose"}

// Resource file names, resolved relative to the data directory.
const (
	KeywordsFile  = "keywords.txt"
	HistoryFile   = "report_history.json"
	RemindersFile = "reminders.json"
)

// Canonical time layouts (store these exact strings on disk).
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
)

// UnknownDate is the sentinel for reports with no recognizable date in their text.
const UnknownDate = "Unknown"
