package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// FetchStrategy selects how a source is retrieved.
type FetchStrategy string

const (
	StrategyRSS     FetchStrategy = "rss"
	StrategyWebpage FetchStrategy = "webpage"
)

// Source describes one upstream feed. Immutable, loaded at startup.
type Source struct {
	Name         string
	Jurisdiction string
	FetchURL     string
	Strategy     FetchStrategy
	Permitted    bool
}

// RawItem is one unit fetched from a source before extraction.
type RawItem struct {
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
	SourceName  string
}

// FilingType classifies the legal event behind a finding.
type FilingType string

const (
	FilingPowerOfSale FilingType = "power_of_sale"
	FilingForeclosure FilingType = "foreclosure"
	FilingBankruptcy  FilingType = "bankruptcy"
	FilingEstateSale  FilingType = "estate_sale"
	FilingTaxSale     FilingType = "tax_sale"
	FilingLien        FilingType = "lien_proceeding"
	FilingOtherLegal  FilingType = "other_legal"
)

// Priority buckets the urgency score.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Finding is one extracted, classified, scored opportunity record.
// Immutable once produced within a run.
type Finding struct {
	ID               string
	Title            string
	FilingType       FilingType
	CaseNumber       string
	Address          string
	Amount           float64
	FilingDate       time.Time
	Priority         Priority
	Accuracy         int
	OpportunityScore int
	Source           string
	Link             string
	RawContent       string
}

// DedupeKey is the composite key findings are collapsed on within a run.
// Missing fields contribute an empty segment.
func (f Finding) DedupeKey() string {
	return f.CaseNumber + "|" + f.Address + "|" + f.Title
}

// DisplayID derives a stable identifier from title and filing date. It is
// used for display only; persistence keys on the source link.
func DisplayID(title string, date time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s", title, date.Format("2006-01-02"))))
	return hex.EncodeToString(sum[:8])
}

// DateRange bounds a run to findings filed within a trailing window.
type DateRange string

const (
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// Window returns the trailing duration the range covers.
func (r DateRange) Window() time.Duration {
	switch r {
	case RangeToday:
		return 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}
