// Package classify assigns filing types and scores to extracted candidates.
package classify

import (
	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/extract"
	"NoticeScanner/internal/patterns"
)

// minContentLength marks a description substantial enough to trust.
const minContentLength = 120

// TypeOf walks the ordered rule table and returns the first filing type
// whose pattern matches, defaulting to other_legal.
func TypeOf(text string) domain.FilingType {
	for _, rule := range patterns.TypeRules {
		if rule.Pattern.MatchString(text) {
			return rule.Type
		}
	}
	return domain.FilingOtherLegal
}

// PriorityScore accumulates urgency signals from the text and amount.
func PriorityScore(text string, amount float64) int {
	score := 0

	if patterns.Urgent.MatchString(text) {
		score += 30
	}
	if patterns.FinalNotice.MatchString(text) {
		score += 20
	}
	if patterns.PowerOfSale.MatchString(text) {
		score += 25
	}
	if patterns.TaxSale.MatchString(text) {
		score += 25
	}
	if patterns.Foreclosure.MatchString(text) {
		score += 20
	}
	if patterns.Receivership.MatchString(text) {
		score += 15
	}

	switch {
	case amount > 2_000_000:
		score += 25
	case amount > 1_000_000:
		score += 20
	case amount > 500_000:
		score += 15
	}

	return score
}

// Bucket maps a raw priority score to its tier.
func Bucket(score int) domain.Priority {
	switch {
	case score >= 50:
		return domain.PriorityHigh
	case score >= 25:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// AccuracyScore estimates extraction confidence from field presence.
func AccuracyScore(c extract.Candidate, filingType domain.FilingType, text string) int {
	score := 0

	if c.CaseNumber != "" {
		score += 25
	}
	if c.Address != "" {
		score += 25
	}
	if c.Amount > 0 {
		score += 20
	}
	if filingType != domain.FilingOtherLegal {
		score += 15
	}
	if len(text) >= minContentLength {
		score += 10
	}
	if patterns.Jurisdiction.MatchString(text) {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

var typeBonus = map[domain.FilingType]int{
	domain.FilingPowerOfSale: 30,
	domain.FilingTaxSale:     25,
	domain.FilingForeclosure: 25,
	domain.FilingBankruptcy:  20,
	domain.FilingEstateSale:  15,
	domain.FilingLien:        10,
}

// OpportunityScore estimates the business value of the finding on [0,100].
func OpportunityScore(filingType domain.FilingType, priority domain.Priority, accuracy int, c extract.Candidate) int {
	score := 40

	if bonus, ok := typeBonus[filingType]; ok {
		score += bonus
	} else {
		score += 5
	}

	switch priority {
	case domain.PriorityHigh:
		score += 20
	case domain.PriorityMedium:
		score += 10
	}

	if accuracy > 80 {
		score += 10
	}
	if c.Address != "" && c.CaseNumber != "" {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Build assembles the final finding for one raw item.
func Build(item domain.RawItem, c extract.Candidate) domain.Finding {
	text := item.Title + " " + item.Description

	filingType := TypeOf(text)
	priority := Bucket(PriorityScore(text, c.Amount))
	accuracy := AccuracyScore(c, filingType, text)

	return domain.Finding{
		ID:               domain.DisplayID(item.Title, c.FilingDate),
		Title:            item.Title,
		FilingType:       filingType,
		CaseNumber:       c.CaseNumber,
		Address:          c.Address,
		Amount:           c.Amount,
		FilingDate:       c.FilingDate,
		Priority:         priority,
		Accuracy:         accuracy,
		OpportunityScore: OpportunityScore(filingType, priority, accuracy, c),
		Source:           item.SourceName,
		Link:             item.Link,
		RawContent:       text,
	}
}
