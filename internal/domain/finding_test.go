package domain

import (
	"testing"
	"time"
)

func TestDisplayIDDeterministic(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.August, 20, 9, 30, 0, 0, time.UTC)
	a := DisplayID("Notice of Sale under Mortgage", date)
	b := DisplayID("Notice of Sale under Mortgage", date.Add(2*time.Hour))
	if a != b {
		t.Fatal("same title and day must yield the same id")
	}

	c := DisplayID("Notice of Sale under Mortgage", date.AddDate(0, 0, 1))
	if a == c {
		t.Fatal("different days must yield different ids")
	}
}

func TestDedupeKeyUsesEmptySegments(t *testing.T) {
	t.Parallel()

	f := Finding{Title: "Notice"}
	if f.DedupeKey() != "||Notice" {
		t.Fatalf("unexpected key: %q", f.DedupeKey())
	}
}

func TestDateRangeWindows(t *testing.T) {
	t.Parallel()

	if RangeToday.Window() != 24*time.Hour {
		t.Fatalf("today window: %v", RangeToday.Window())
	}
	if RangeWeek.Window() != 7*24*time.Hour {
		t.Fatalf("week window: %v", RangeWeek.Window())
	}
	if RangeMonth.Window() != 30*24*time.Hour {
		t.Fatalf("month window: %v", RangeMonth.Window())
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	t.Parallel()

	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Fatal("priority ranks must be strictly ordered")
	}
}
