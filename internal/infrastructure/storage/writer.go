package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/ports"
)

// PersistenceError reports a failed write for one finding. Other writes in
// the batch proceed.
type PersistenceError struct {
	Link string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Link, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Writer fans upserts out to the repository under a concurrency bound so a
// burst of findings cannot overwhelm the store.
type Writer struct {
	repo   ports.FindingRepository
	limit  int
	logger *slog.Logger
}

var _ ports.FindingWriter = (*Writer)(nil)

// NewWriter builds a bounded writer; limit defaults to 5.
func NewWriter(repo ports.FindingRepository, limit int, logger *slog.Logger) *Writer {
	if limit <= 0 {
		limit = 5
	}
	return &Writer{repo: repo, limit: limit, logger: logger}
}

// WriteAll upserts every finding, scheduling writes in input order and
// allowing at most the configured number in flight. It returns one
// PersistenceError per failed finding; successes are not reported
// individually.
func (w *Writer) WriteAll(ctx context.Context, findings []domain.Finding) []error {
	if w.repo == nil || len(findings) == 0 {
		return nil
	}

	sem := make(chan struct{}, w.limit)
	errCh := make(chan error, len(findings))

	var wg sync.WaitGroup
	for _, f := range findings {
		sem <- struct{}{}
		wg.Add(1)

		go func(f domain.Finding) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := w.repo.Upsert(ctx, f); err != nil {
				if w.logger != nil {
					w.logger.Warn("persist failed", "link", f.Link, "error", err)
				}
				errCh <- &PersistenceError{Link: f.Link, Err: err}
			}
		}(f)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errs
}
