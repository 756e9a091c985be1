package listing

import (
	"html"
	"regexp"
	"strings"

	"github.com/rfpmatch/backend/internal/domain"
)

// The listing is a static page of card elements. Each card carries one CSS
// class per field; the extractor pulls the text content of the first element
// with the matching class inside each card. Missing fields become empty
// strings, never errors.
var (
	// cardOpenRegex marks the start of each card; the page is split on it so
	// every segment after the first holds exactly one card's content.
	cardOpenRegex = regexp.MustCompile(`<[^>]+class="[^"]*\brfp-card\b[^"]*"[^>]*>`)

	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// fieldClasses maps card CSS classes to RFP fields, in the order the cards
// lay them out.
var fieldClasses = []string{
	"rfp-id",
	"rfp-title",
	"rfp-description",
	"rfp-requirements",
	"rfp-category",
	"rfp-organization",
	"rfp-department",
	"status-badge",
	"rfp-deadline",
	"rfp-issue-date",
}

// classRegexes holds one compiled extraction pattern per field class.
var classRegexes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(fieldClasses))
	for _, class := range fieldClasses {
		res[class] = regexp.MustCompile(`(?s)<[^>]+class="[^"]*\b` + regexp.QuoteMeta(class) + `\b[^"]*"[^>]*>(.*?)</`)
	}
	return res
}()

// ExtractRFPCards parses the listing page HTML and returns one RFP per
// .rfp-card element found.
func ExtractRFPCards(page string) []domain.RFP {
	var records []domain.RFP
	segments := cardOpenRegex.Split(page, -1)
	for _, card := range segments[1:] {
		fields := make(map[string]string, len(fieldClasses))
		for _, class := range fieldClasses {
			fields[class] = classText(card, class)
		}

		rfp := domain.RFP{
			ID:           fields["rfp-id"],
			Title:        fields["rfp-title"],
			Description:  fields["rfp-description"],
			Requirements: fields["rfp-requirements"],
			Category:     fields["rfp-category"],
			Organization: fields["rfp-organization"],
			Department:   fields["rfp-department"],
			Status:       fields["status-badge"],
			DeadlineRaw:  fields["rfp-deadline"],
			IssueDateRaw: fields["rfp-issue-date"],
		}
		if rfp.Title == "" && rfp.Description == "" {
			continue
		}
		records = append(records, rfp)
	}
	return records
}

// classText extracts the text content of the first element in the fragment
// carrying the given class.
func classText(fragment, class string) string {
	m := classRegexes[class].FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return cleanText(m[1])
}

// cleanText strips residual tags, decodes entities and collapses whitespace.
func cleanText(s string) string {
	s = tagRegex.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
