package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for technical spec extraction
var (
	// Matches a conductor cross-section like "6 sqmm", "2.5sqmm"
	conductorSizeRegex = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*sq\.?\s*mm\b`)

	// Matches a voltage grade like "1.1/3.3 kV", "11/33kV"
	voltageRatingRegex = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*/\s*\d+(?:\.\d+)?)\s*kv\b`)

	// Matches compliance codes like "IEC-60502", "IS 7098", "BS6004". The
	// body prefix must be uppercase: prose like "size is 6" is not a code.
	standardCodeRegex = regexp.MustCompile(`\b(IEC|IS|BS|EN|ASTM|IEEE)[-\s]?(\d[0-9A-Za-z.-]*)\b`)
)

// conductorMaterials is the closed set of conductor keywords recognised in
// RFP prose, matched case-insensitively as whole words.
var conductorMaterials = []string{"copper", "aluminium", "aluminum"}

// ExtractTechSpecs pulls structured technical attributes out of free-text RFP
// descriptions. Each attribute is matched independently: a missing voltage
// rating does not block extraction of the conductor size. The result may be
// empty; extraction never fails.
//
// Recognised keys: conductor_size, voltage_rating, conductor, standards.
func ExtractTechSpecs(text string) map[string]string {
	specs := make(map[string]string)
	if text == "" {
		return specs
	}

	if m := conductorSizeRegex.FindStringSubmatch(text); m != nil {
		specs["conductor_size"] = m[1]
	}

	if m := voltageRatingRegex.FindStringSubmatch(text); m != nil {
		specs["voltage_rating"] = strings.ReplaceAll(m[1], " ", "")
	}

	lower := strings.ToLower(text)
	for _, material := range conductorMaterials {
		if containsWord(lower, material) {
			specs["conductor"] = material
			break
		}
	}

	if matches := standardCodeRegex.FindAllStringSubmatch(text, -1); matches != nil {
		codes := make([]string, 0, len(matches))
		for _, m := range matches {
			codes = append(codes, m[1]+"-"+strings.TrimRight(m[2], ".-"))
		}
		specs["standards"] = strings.Join(codes, ", ")
	}

	return specs
}

// containsWord reports whether word occurs in s bounded by non-letter runes.
// Both arguments must already be lowercase.
func containsWord(s, word string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		beforeOK := idx == 0 || !isLetter(s[idx-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
