package domain

import "time"

// RunStatus is the terminal state of a scraping run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunDegraded  RunStatus = "degraded"
	RunFailed    RunStatus = "failed"
)

// SourceReport records the outcome of one source within a run.
type SourceReport struct {
	Name  string
	OK    bool
	Items int
	Error string
}

// RunResult aggregates everything one pipeline run produced.
type RunResult struct {
	RunID             string
	Success           bool
	Status            RunStatus
	Region            string
	TotalFindings     int
	HighPriorityCount int
	// NewFindings counts findings whose natural key was not yet in
	// storage before this run; the remainder were refreshed in place.
	NewFindings int
	Findings    []Finding
	SourcesProcessed  []SourceReport
	Accuracy          int
	ProcessingTime    time.Duration
	Timestamp         time.Time
	Error             string
}
