package usecase

import (
	"regexp"
	"strings"
	"time"
)

// Package-level compiled regex patterns for date cleaning
var (
	// Matches clock times like "17:00", "5:30:00" so they never become the date candidate
	clockTimeRegex = regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\b`)

	// Timezone labels and filler words the listing mixes into deadline strings
	dateNoiseRegex = regexp.MustCompile(`(?i)\b(ist|utc|gmt|at|hrs|hours)\b`)
)

// dateLayouts is the ordered list of accepted calendar formats. Order matters:
// day-first numeric layouts are tried before month-first, so "18/12/25" parses
// as 18 December by convention rather than failing over to locale detection.
var dateLayouts = []string{
	"02-Jan-2006",
	"02-Jan-06",
	"02-01-2006",
	"02-01-06",
	"02/01/2006",
	"02/01/06",
	"02-January-2006",
	"January-02-2006",
	"2006-01-02",
	"01/02/2006",
}

// NormalizeDate parses a free-form date string from the listing into the
// canonical "2006-01-02" form. Deadline strings arrive noisy ("18-Dec-2025 at
// 17:00 IST", "18/12/25 | 5 PM"), so known noise tokens are stripped first and
// the first remaining whitespace-delimited token is taken as the candidate.
// If no layout parses, the original input is returned unchanged; consumers
// treat a non-ISO string as "unparsed, display as-is".
func NormalizeDate(raw string) string {
	cleaned := clockTimeRegex.ReplaceAllString(raw, " ")
	cleaned = dateNoiseRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.NewReplacer(",", " ", "|", " ").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return raw
	}

	candidate := strings.Fields(cleaned)[0]
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}
