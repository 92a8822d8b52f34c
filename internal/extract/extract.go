// Package extract pulls structured candidate fields out of raw bulletin
// text. Extraction is best-effort: missing fields are simply absent.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/patterns"
)

// Candidate carries the fields recovered from one raw item before
// classification and scoring.
type Candidate struct {
	CaseNumber string
	Address    string
	Amount     float64
	FilingDate time.Time
}

// minAmount discards incidental dollar figures (fees, deposits).
const minAmount = 1000

// Extract applies the pattern library to the item's title and description.
func Extract(item domain.RawItem) Candidate {
	text := item.Title + " " + item.Description

	c := Candidate{
		CaseNumber: caseNumber(text),
		Address:    address(text),
		Amount:     amount(text),
		FilingDate: item.PublishedAt,
	}

	if c.FilingDate.IsZero() {
		c.FilingDate = time.Now().UTC()
	}

	return c
}

func caseNumber(text string) string {
	for _, re := range patterns.CaseNumber {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		// Labelled patterns capture the number itself in group 1.
		if len(m) > 1 && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
		if m[0] != "" {
			return strings.TrimSpace(m[0])
		}
	}
	return ""
}

var (
	spaceRuns    = regexp.MustCompile(`\s+`)
	doubledComma = regexp.MustCompile(`,\s*,`)
)

func address(text string) string {
	match := patterns.AddressFull.FindString(text)
	if match == "" {
		match = patterns.AddressLoose.FindString(text)
	}
	if match == "" {
		return ""
	}

	// An address without either a postal code or a province token is
	// more likely a mid-sentence fragment than a civic address.
	if !patterns.PostalCode.MatchString(match) && !patterns.Province.MatchString(match) {
		return ""
	}

	return normalize(match)
}

func normalize(addr string) string {
	addr = spaceRuns.ReplaceAllString(addr, " ")
	addr = doubledComma.ReplaceAllString(addr, ",")
	return strings.Trim(addr, " ,")
}

func amount(text string) float64 {
	var best float64
	for _, m := range patterns.Money.FindAllString(text, -1) {
		raw := strings.ReplaceAll(strings.TrimPrefix(m, "$"), ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < minAmount {
			continue
		}
		if value > best {
			best = value
		}
	}
	return best
}
