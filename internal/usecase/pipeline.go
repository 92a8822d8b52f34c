package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"NoticeScanner/internal/classify"
	"NoticeScanner/internal/config"
	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/extract"
	"NoticeScanner/internal/ports"
	"NoticeScanner/internal/postprocess"
	"NoticeScanner/internal/relevance"
	"NoticeScanner/internal/sources"
)

// runState names the phases a run walks through; used for log context only.
type runState string

const (
	stateFetching       runState = "fetching_sources"
	stateExtracting     runState = "extracting"
	statePostProcessing runState = "post_processing"
	statePersisting     runState = "persisting"
)

// RunRequest parameterizes one pipeline execution.
type RunRequest struct {
	Region   string
	Range    domain.DateRange
	TestMode bool
}

// PipelineDeps wires all collaborators into the orchestrator.
type PipelineDeps struct {
	Registry   *sources.Registry
	Fetcher    ports.ItemFetcher
	Writer     ports.FindingWriter
	Repository ports.FindingRepository
	Scraper    config.ScraperConfig
	Logger     *slog.Logger
}

// Pipeline drives one scraping run end to end: fetch each source in turn,
// extract and score relevant items, post-process, and persist.
type Pipeline struct {
	registry *sources.Registry
	fetcher  ports.ItemFetcher
	writer   ports.FindingWriter
	repo     ports.FindingRepository
	scraper  config.ScraperConfig
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		registry: deps.Registry,
		fetcher:  deps.Fetcher,
		writer:   deps.Writer,
		repo:     deps.Repository,
		scraper:  deps.Scraper,
		logger:   deps.Logger,
	}
}

// Run executes one scraping pass. Expected failure modes (timeouts, bad
// upstreams, partial outages) never surface as errors; they are folded into
// the result's status and per-source reports.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) domain.RunResult {
	start := time.Now()

	result := domain.RunResult{
		RunID:     uuid.NewString(),
		Region:    req.Region,
		Timestamp: start.UTC(),
	}

	if req.Range == "" {
		req.Range = domain.RangeWeek
	}

	srcs, err := p.registry.Resolve(req.Region)
	if err != nil {
		p.warn("run aborted", "region", req.Region, "error", err)
		result.Status = domain.RunFailed
		result.Error = err.Error()
		result.Findings = []domain.Finding{}
		result.ProcessingTime = time.Since(start)
		return result
	}

	var findings []domain.Finding
	failed := 0

	for i, src := range srcs {
		if i > 0 {
			p.courtesyDelay(ctx, req.TestMode)
		}

		items, err := p.fetchWithRetry(ctx, src)
		if err != nil {
			failed++
			p.warn("source failed", "state", stateFetching, "source", src.Name, "error", err)
			result.SourcesProcessed = append(result.SourcesProcessed, domain.SourceReport{
				Name:  src.Name,
				Error: err.Error(),
			})
			continue
		}

		produced := p.extractFindings(items)
		p.debug("source processed", "state", stateExtracting, "source", src.Name,
			"items", len(items), "findings", len(produced))

		findings = append(findings, produced...)
		result.SourcesProcessed = append(result.SourcesProcessed, domain.SourceReport{
			Name:  src.Name,
			OK:    true,
			Items: len(produced),
		})
	}

	p.debug("post-processing", "state", statePostProcessing, "candidates", len(findings))
	findings = postprocess.Dedupe(findings)
	findings = postprocess.FilterRange(findings, req.Range, time.Now())
	postprocess.Sort(findings)

	result.NewFindings = len(findings)
	if !req.TestMode && len(findings) > 0 {
		if known := p.knownLinks(ctx, findings); known > 0 {
			result.NewFindings = len(findings) - known
			p.debug("findings already in storage", "state", statePersisting, "known", known)
		}

		if p.writer != nil {
			errs := p.writer.WriteAll(ctx, findings)
			for _, werr := range errs {
				p.warn("finding not persisted", "state", statePersisting, "error", werr)
			}
		}
	}

	result.Findings = findings
	result.TotalFindings = len(findings)
	result.HighPriorityCount = countHighPriority(findings)
	result.Accuracy = meanAccuracy(findings)
	result.ProcessingTime = time.Since(start)

	switch {
	case len(srcs) > 0 && failed == len(srcs):
		result.Status = domain.RunFailed
		result.Error = "all sources failed"
	case failed > 0:
		result.Status = domain.RunDegraded
		result.Success = true
	default:
		result.Status = domain.RunCompleted
		result.Success = true
	}

	p.info("run finished", "region", req.Region, "status", result.Status,
		"findings", result.TotalFindings, "high_priority", result.HighPriorityCount,
		"elapsed", result.ProcessingTime)

	return result
}

// fetchWithRetry gives each source a small fixed number of attempts; the
// upstream systems are flaky enough that a single retry recovers most
// transient failures.
func (p *Pipeline) fetchWithRetry(ctx context.Context, src domain.Source) ([]domain.RawItem, error) {
	attempts := p.scraper.RetryAttempts
	if attempts <= 0 {
		attempts = 2
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		items, err := p.fetcher.Fetch(ctx, src)
		if err == nil {
			return items, nil
		}
		lastErr = err
		if attempt < attempts {
			p.debug("retrying source", "source", src.Name, "attempt", attempt, "error", err)
		}
	}
	return nil, lastErr
}

// knownLinks counts how many findings already have a row in storage; the
// upsert refreshes those in place rather than inserting duplicates.
func (p *Pipeline) knownLinks(ctx context.Context, findings []domain.Finding) int {
	if p.repo == nil {
		return 0
	}

	links := make([]string, len(findings))
	for i, f := range findings {
		links[i] = f.Link
	}

	existing, err := p.repo.ExistingLinks(ctx, links)
	if err != nil {
		p.warn("existing-link lookup failed", "state", statePersisting, "error", err)
		return 0
	}

	known := 0
	for _, f := range findings {
		if existing[f.Link] {
			known++
		}
	}
	return known
}

func (p *Pipeline) extractFindings(items []domain.RawItem) []domain.Finding {
	var out []domain.Finding
	for _, item := range items {
		if !relevance.Relevant(item.Title, item.Description) {
			continue
		}
		out = append(out, classify.Build(item, extract.Extract(item)))
	}
	return out
}

// courtesyDelay spaces requests to rate-sensitive court and municipal
// systems. Skipped in test mode.
func (p *Pipeline) courtesyDelay(ctx context.Context, testMode bool) {
	if testMode {
		return
	}

	delay := p.scraper.SourceDelay()
	if delay <= 0 {
		delay = 2 * time.Second
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func countHighPriority(findings []domain.Finding) int {
	n := 0
	for _, f := range findings {
		if f.Priority == domain.PriorityHigh {
			n++
		}
	}
	return n
}

func meanAccuracy(findings []domain.Finding) int {
	if len(findings) == 0 {
		return 0
	}
	sum := 0
	for _, f := range findings {
		sum += f.Accuracy
	}
	return sum / len(findings)
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
