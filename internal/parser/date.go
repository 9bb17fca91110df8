package parser

import (
	"regexp"

	"github.com/clinikit/labreport-tracker/constants"
)

// Date-shaped tokens: DD-MM-YYYY or YYYY-MM-DD, with '-' or '/' separators.
// No calendar validation is done; the literal match is returned verbatim.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2}[-/]\d{2}[-/]\d{4}\b`),
	regexp.MustCompile(`\b\d{4}[-/]\d{2}[-/]\d{2}\b`),
}

// DateFromText scans the original, non-normalized text for the first
// date-shaped token and returns it verbatim, or "Unknown" when nothing
// matches.
func DateFromText(text string) string {
	for _, p := range datePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return constants.UnknownDate
}
