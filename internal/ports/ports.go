package ports

import (
	"context"
	"time"

	"NoticeScanner/internal/domain"
)

// ItemFetcher pulls raw bulletin items for one upstream source.
type ItemFetcher interface {
	Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error)
}

// FindingRepository persists findings keyed by their source link.
type FindingRepository interface {
	Upsert(ctx context.Context, f domain.Finding) error
	ExistingLinks(ctx context.Context, links []string) (map[string]bool, error)
}

// FindingWriter fans a batch of findings out to storage under a
// concurrency bound.
type FindingWriter interface {
	WriteAll(ctx context.Context, findings []domain.Finding) []error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
