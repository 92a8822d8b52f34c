package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"

	"NoticeScanner/internal/config"
	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/infrastructure/fetcher"
	"NoticeScanner/internal/infrastructure/storage"
	"NoticeScanner/internal/logging"
	"NoticeScanner/internal/sources"
	"NoticeScanner/internal/usecase"
)

// Application wires configuration into the scraping pipeline.
type Application struct {
	cfg      config.Config
	db       *sql.DB
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance. When testMode is set the
// database is never opened and findings are not persisted.
func New(cfg config.Config, baseLogger *slog.Logger, testMode bool) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := sources.NewRegistry()
	sources.Defaults(registry)
	for _, sc := range cfg.Sources {
		registry.Register(sc.Region, domain.Source{
			Name:         sc.Name,
			Jurisdiction: sc.Jurisdiction,
			FetchURL:     sc.URL,
			Strategy:     domain.FetchStrategy(sc.Strategy),
			Permitted:    sc.Permitted,
		})
	}
	registry.OverrideURLs(cfg.SourceURLOverride)

	itemFetcher := fetcher.New(&http.Client{}, cfg.Scraper.FetchTimeout(),
		baseLogger.With("component", "fetcher"))

	app := &Application{cfg: cfg, logger: baseLogger}

	deps := usecase.PipelineDeps{
		Registry: registry,
		Fetcher:  itemFetcher,
		Scraper:  cfg.Scraper,
		Logger:   baseLogger.With("component", "pipeline"),
	}

	if !testMode {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.db = db

		repo := storage.NewPostgresRepository(db)
		deps.Repository = repo
		deps.Writer = storage.NewWriter(repo, cfg.Scraper.PersistConcurrency,
			baseLogger.With("component", "writer"))
	}

	app.pipeline = usecase.NewPipeline(deps)
	return app, nil
}

// Pipeline exposes the orchestrator for scheduler wiring.
func (a *Application) Pipeline() *usecase.Pipeline {
	return a.pipeline
}

// Run performs a single pipeline execution and returns its result.
func (a *Application) Run(ctx context.Context, req usecase.RunRequest) domain.RunResult {
	return a.pipeline.Run(ctx, req)
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
