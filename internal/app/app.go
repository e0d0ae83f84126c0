package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/handlers"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/services/classify"
	"github.com/ternarybob/scrutari/internal/services/clean"
	"github.com/ternarybob/scrutari/internal/services/condense"
	"github.com/ternarybob/scrutari/internal/services/enrich"
	"github.com/ternarybob/scrutari/internal/services/ingest"
	"github.com/ternarybob/scrutari/internal/services/pdf"
	"github.com/ternarybob/scrutari/internal/services/report"
	"github.com/ternarybob/scrutari/internal/services/search"
	"github.com/ternarybob/scrutari/internal/storage/sqlite"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Pipeline services
	IngestService   *ingest.Service
	CleanService    *clean.Service
	ClassifyService *classify.Service
	CondenseService *condense.Service
	SearchService   interfaces.SearchService

	// Enrichment. Provider is nil when no API key is configured; the
	// pipeline and search still work without one.
	Provider      interfaces.LLMProvider
	EnrichService *enrich.Service
	ReportService *report.Service

	// Handlers
	DocumentHandler  *handlers.DocumentHandler
	SearchHandler    *handlers.SearchHandler
	SummarizeHandler *handlers.SummarizeHandler

	scheduler *cron.Cron
}

// New creates the application, opening storage and wiring services
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	storageManager, err := sqlite.NewManager(&config.Storage.SQLite, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.StorageManager = storageManager

	documents := storageManager.DocumentStorage()
	pages := storageManager.PageStorage()
	index := storageManager.SearchIndex()

	extractor := pdf.NewExtractor(logger)
	a.IngestService = ingest.NewService(documents, extractor, logger)
	a.CleanService = clean.NewService(storageManager, logger)
	a.ClassifyService = classify.NewService(documents, logger)
	a.CondenseService = condense.NewService(documents, logger)
	a.SearchService = search.NewService(index, logger)

	if err := a.initEnrichment(); err != nil {
		return nil, err
	}

	a.DocumentHandler = handlers.NewDocumentHandler(documents, pages, logger)
	a.SearchHandler = handlers.NewSearchHandler(a.SearchService, logger)

	var summarizer handlers.Summarizer
	if a.EnrichService != nil {
		summarizer = a.EnrichService
	}
	a.SummarizeHandler = handlers.NewSummarizeHandler(summarizer, logger)

	return a, nil
}

// initEnrichment builds the LLM provider and dependent services when an
// API key is available. Missing credentials are not fatal; enrichment
// endpoints report the gap at call time instead.
func (a *App) initEnrichment() error {
	cfg := &a.Config.Enrich
	hasKey := (cfg.Provider == "gemini" && cfg.GoogleAPIKey != "") ||
		(cfg.Provider == "claude" && cfg.ClaudeAPIKey != "")
	if !hasKey {
		a.Logger.Warn().Str("provider", cfg.Provider).Msg("No LLM API key configured, enrichment disabled")
		return nil
	}

	provider, err := enrich.NewProvider(cfg, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	a.Provider = provider

	documents := a.StorageManager.DocumentStorage()
	a.EnrichService = enrich.NewService(documents, provider, cfg, a.Logger)
	a.ReportService = report.NewService(documents, provider, cfg, a.Logger)
	return nil
}

// StartScheduler starts the periodic enrichment sweep if a schedule is
// configured. No-op otherwise.
func (a *App) StartScheduler() error {
	if a.Config.Enrich.Schedule == "" || a.EnrichService == nil {
		return nil
	}

	a.scheduler = cron.New()
	_, err := a.scheduler.AddFunc(a.Config.Enrich.Schedule, func() {
		if _, err := a.EnrichService.Run(context.Background()); err != nil {
			a.Logger.Warn().Err(err).Msg("Scheduled enrichment sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid enrichment schedule '%s': %w", a.Config.Enrich.Schedule, err)
	}

	a.scheduler.Start()
	a.Logger.Info().Str("schedule", a.Config.Enrich.Schedule).Msg("Enrichment scheduler started")
	return nil
}

// Close releases application resources
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Provider != nil {
		a.Provider.Close()
	}
	if a.StorageManager != nil {
		return a.StorageManager.Close()
	}
	return nil
}
