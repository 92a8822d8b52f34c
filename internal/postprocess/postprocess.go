// Package postprocess deduplicates, date-filters, and orders findings
// between classification and persistence.
package postprocess

import (
	"sort"
	"time"

	"NoticeScanner/internal/domain"
)

// Dedupe collapses findings sharing a composite case/address/title key,
// keeping the first occurrence.
func Dedupe(findings []domain.Finding) []domain.Finding {
	seen := map[string]struct{}{}
	out := make([]domain.Finding, 0, len(findings))

	for _, f := range findings {
		key := f.DedupeKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}

	return out
}

// FilterRange keeps findings whose filing date falls within the trailing
// window measured back from now. The boundary is inclusive.
func FilterRange(findings []domain.Finding, rng domain.DateRange, now time.Time) []domain.Finding {
	cutoff := now.Add(-rng.Window())
	out := make([]domain.Finding, 0, len(findings))

	for _, f := range findings {
		if f.FilingDate.Before(cutoff) {
			continue
		}
		out = append(out, f)
	}

	return out
}

// Sort orders findings by priority tier then accuracy, both descending.
// The sort is stable so equal findings keep their upstream order.
func Sort(findings []domain.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Priority.Rank() != findings[j].Priority.Rank() {
			return findings[i].Priority.Rank() > findings[j].Priority.Rank()
		}
		return findings[i].Accuracy > findings[j].Accuracy
	})
}
