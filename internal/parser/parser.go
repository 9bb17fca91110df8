// Package parser turns raw report text into keyed numeric lab values.
//
// Matching mirrors how lab reports are actually laid out: the parameter name
// somewhere in the text, then the measured value some distance after it. The
// text is whitespace-collapsed and lowercased first so PDF line wrapping
// cannot split a keyword from its value.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// MatchStatus classifies the outcome of searching for one keyword.
type MatchStatus int

const (
	// StatusFound means a numeric token followed the keyword and parsed cleanly.
	StatusFound MatchStatus = iota
	// StatusNotFound means no numeric token followed the keyword anywhere.
	StatusNotFound
	// StatusMalformed means a token was seen but could not be converted.
	StatusMalformed
)

// Match is the per-keyword search outcome. A malformed token never aborts the
// surrounding extraction; it just yields no value for that keyword.
type Match struct {
	Keyword string
	Status  MatchStatus
	Value   float64
	Token   string
}

var spaceRE = regexp.MustCompile(`\s+`)

// numberToken matches one or more digits, optionally with digit groups
// separated by '.' or ','. A comma is treated as a decimal separator.
const numberToken = `(\d+(?:[.,]\d+)*)`

// Extract searches text for each keyword and returns the parsed values plus a
// best-effort report date. It is a pure function of its inputs and never
// fails: empty or digit-free text yields an empty mapping and date "Unknown".
func Extract(text string, keywords []string) (map[string]float64, string) {
	matches, date := ExtractMatches(text, keywords)
	return Results(matches), date
}

// ExtractMatches is Extract with the per-keyword outcomes preserved, for
// callers that want to report why a parameter is absent.
func ExtractMatches(text string, keywords []string) ([]Match, string) {
	date := DateFromText(text)

	matches := make([]Match, 0, len(keywords))
	if strings.TrimSpace(text) == "" {
		for _, kw := range keywords {
			matches = append(matches, Match{Keyword: kw, Status: StatusNotFound})
		}
		return matches, date
	}

	normalized := strings.ToLower(spaceRE.ReplaceAllString(text, " "))
	for _, kw := range keywords {
		matches = append(matches, matchKeyword(normalized, kw))
	}
	return matches, date
}

// Results collapses match outcomes into the value mapping. Only found values
// appear; absence of a key means "not found", not zero. The map is never nil.
func Results(matches []Match) map[string]float64 {
	results := make(map[string]float64)
	for _, m := range matches {
		if m.Status == StatusFound {
			results[m.Keyword] = m.Value
		}
	}
	return results
}

func matchKeyword(normalized, keyword string) Match {
	re, err := regexp.Compile(regexp.QuoteMeta(strings.ToLower(keyword)) + `\s*.*?` + numberToken)
	if err != nil {
		return Match{Keyword: keyword, Status: StatusMalformed}
	}
	sub := re.FindStringSubmatch(normalized)
	if sub == nil {
		return Match{Keyword: keyword, Status: StatusNotFound}
	}
	token := sub[1]
	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return Match{Keyword: keyword, Status: StatusMalformed, Token: token}
	}
	return Match{Keyword: keyword, Status: StatusFound, Value: value, Token: token}
}
