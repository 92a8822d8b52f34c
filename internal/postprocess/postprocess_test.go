package postprocess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"NoticeScanner/internal/domain"
)

func TestDedupeCollapsesCompositeKey(t *testing.T) {
	t.Parallel()

	a := domain.Finding{Title: "Notice", CaseNumber: "CV-24-00012345", Address: "123 Main Street", Source: "first"}
	b := domain.Finding{Title: "Notice", CaseNumber: "CV-24-00012345", Address: "123 Main Street", Source: "second"}
	c := domain.Finding{Title: "Notice", CaseNumber: "CV-24-00099999", Address: "123 Main Street"}

	out := Dedupe([]domain.Finding{a, b, c})

	assert.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Source, "first occurrence wins")
}

func TestDedupeTreatsMissingFieldsAsEmpty(t *testing.T) {
	t.Parallel()

	a := domain.Finding{Title: "Notice"}
	b := domain.Finding{Title: "Notice"}

	assert.Len(t, Dedupe([]domain.Finding{a, b}), 1)
}

func TestFilterRangeBoundaryInclusive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	onBoundary := domain.Finding{FilingDate: now.Add(-7 * 24 * time.Hour)}
	inside := domain.Finding{FilingDate: now.Add(-time.Hour)}
	outside := domain.Finding{FilingDate: now.Add(-7*24*time.Hour - time.Second)}

	out := FilterRange([]domain.Finding{onBoundary, inside, outside}, domain.RangeWeek, now)

	assert.Len(t, out, 2)
	for _, f := range out {
		assert.False(t, f.FilingDate.Before(now.Add(-7*24*time.Hour)))
	}
}

func TestFilterRangeWindows(t *testing.T) {
	t.Parallel()

	now := time.Now()
	twoDaysOld := []domain.Finding{{FilingDate: now.Add(-48 * time.Hour)}}

	assert.Empty(t, FilterRange(twoDaysOld, domain.RangeToday, now))
	assert.Len(t, FilterRange(twoDaysOld, domain.RangeWeek, now), 1)
	assert.Len(t, FilterRange(twoDaysOld, domain.RangeMonth, now), 1)
}

func TestSortStable(t *testing.T) {
	t.Parallel()

	findings := []domain.Finding{
		{Title: "low", Priority: domain.PriorityLow, Accuracy: 90},
		{Title: "high-a", Priority: domain.PriorityHigh, Accuracy: 70},
		{Title: "med", Priority: domain.PriorityMedium, Accuracy: 95},
		{Title: "high-b", Priority: domain.PriorityHigh, Accuracy: 70},
		{Title: "high-c", Priority: domain.PriorityHigh, Accuracy: 85},
	}

	Sort(findings)

	want := []string{"high-c", "high-a", "high-b", "med", "low"}
	for i, title := range want {
		assert.Equal(t, title, findings[i].Title, "position %d", i)
	}
}
