// Package relevance decides whether a fetched bulletin item is worth
// extracting at all.
package relevance

import (
	"strings"

	"NoticeScanner/internal/patterns"
)

// Relevant reports whether the item looks like a real-estate legal notice.
// It requires both a domain keyword and a structural anchor (case number or
// civic address); keyword-only matches are far too noisy in general court
// bulletins.
func Relevant(title, body string) bool {
	text := title + " " + body
	lower := strings.ToLower(text)

	if !hasKeyword(lower) {
		return false
	}

	return hasAnchor(text)
}

func hasKeyword(lower string) bool {
	for _, kw := range patterns.RealEstateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasAnchor(text string) bool {
	for _, re := range patterns.CaseNumber {
		if re.MatchString(text) {
			return true
		}
	}
	return patterns.AddressFull.MatchString(text) || patterns.AddressLoose.MatchString(text)
}
