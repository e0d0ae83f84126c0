package enrich

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
	"golang.org/x/time/rate"
)

// Service runs the LLM enrichment batch: summarize every unsummarized
// document at or above the interest threshold, then rank each summary
// for newsworthiness. Work units are independent documents processed by
// a bounded worker pool with per-document commits, so an interrupted
// batch leaves the remainder for the next run.
type Service struct {
	documents interfaces.DocumentStorage
	provider  interfaces.LLMProvider
	config    *common.EnrichConfig
	limiter   *rate.Limiter
	logger    arbor.ILogger
}

// NewService creates a new enrichment service
func NewService(documents interfaces.DocumentStorage, provider interfaces.LLMProvider, config *common.EnrichConfig, logger arbor.ILogger) *Service {
	// client-side pacing keeps the batch under free-tier quotas
	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerMin/60.0), 1)

	return &Service{
		documents: documents,
		provider:  provider,
		config:    config,
		limiter:   limiter,
		logger:    logger,
	}
}

// Run enriches all eligible documents and returns batch statistics
func (s *Service) Run(ctx context.Context) (*models.EnrichmentStats, error) {
	stats := &models.EnrichmentStats{RunID: uuid.New().String()}

	docs, err := s.documents.ListUnsummarized(ctx, s.config.MinScore)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsummarized documents: %w", err)
	}

	s.logger.Info().
		Str("run_id", stats.RunID).
		Str("provider", s.provider.Name()).
		Int("documents", len(docs)).
		Msg("Starting enrichment run")

	jobs := make(chan *models.Document)
	var wg sync.WaitGroup
	var mu sync.Mutex

	workers := s.config.Concurrency
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				outcome := s.enrichOne(ctx, doc)
				mu.Lock()
				switch outcome {
				case enrichSummarized:
					stats.Summarized++
					stats.Ranked++
				case enrichSkipped:
					stats.Skipped++
				case enrichFailed:
					stats.Failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats, ctx.Err()
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()

	if err := s.rankRecovery(ctx, stats); err != nil {
		return stats, err
	}

	s.logger.Info().
		Str("run_id", stats.RunID).
		Int("summarized", stats.Summarized).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Msg("Enrichment run complete")

	return stats, nil
}

// rankRecovery retries ranking for documents whose summary is stored
// but whose earlier rank response could not be parsed, so a transient
// bad response is not frozen at score zero.
func (s *Service) rankRecovery(ctx context.Context, stats *models.EnrichmentStats) error {
	docs, err := s.documents.ListUnranked(ctx)
	if err != nil {
		return fmt.Errorf("failed to list unranked documents: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	s.logger.Info().Int("documents", len(docs)).Msg("Ranking existing summaries")

	jobs := make(chan *models.Document)
	var wg sync.WaitGroup
	var mu sync.Mutex

	workers := s.config.Concurrency
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				rank := s.rankSummary(ctx, doc.AISummary)
				if !rank.Parsed {
					mu.Lock()
					stats.Failed++
					mu.Unlock()
					continue
				}
				if err := s.documents.UpdateRank(ctx, doc.ID, rank.Score, rank.Reason); err != nil {
					s.logger.Warn().Err(err).Str("filename", doc.Filename).Msg("Failed to store rank")
					mu.Lock()
					stats.Failed++
					mu.Unlock()
					continue
				}
				mu.Lock()
				stats.Ranked++
				mu.Unlock()
			}
		}()
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

type enrichOutcome int

const (
	enrichSummarized enrichOutcome = iota
	enrichSkipped
	enrichFailed
)

// enrichOne summarizes and ranks a single document, committing the
// result immediately. Failures leave the document unsummarized for a
// later run rather than failing the batch.
func (s *Service) enrichOne(ctx context.Context, doc *models.Document) enrichOutcome {
	text := doc.FullText
	if len(doc.Condensed) > 50 {
		text = doc.Condensed
	}

	if len(strings.TrimSpace(text)) < 30 {
		if err := s.documents.UpdateEnrichment(ctx, doc.ID, models.NoExtractableText, 0, ""); err != nil {
			s.logger.Warn().Err(err).Str("filename", doc.Filename).Msg("Failed to mark document")
			return enrichFailed
		}
		return enrichSkipped
	}

	if len(text) > summaryInputLimit {
		text = text[:summaryInputLimit]
	}

	summary, err := s.complete(ctx, summaryPrompt+text, 512)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", doc.Filename).Msg("Summarization failed")
		return enrichFailed
	}

	rank := s.rankSummary(ctx, summary)

	if err := s.documents.UpdateEnrichment(ctx, doc.ID, summary, rank.Score, rank.Reason); err != nil {
		s.logger.Warn().Err(err).Str("filename", doc.Filename).Msg("Failed to store enrichment")
		return enrichFailed
	}

	s.logger.Info().
		Str("filename", doc.Filename).
		Int("news_score", rank.Score).
		Msg("Enriched document")
	return enrichSummarized
}

// rankSummary asks the provider to score a summary. A failed call or
// unparsable response yields the unranked zero result.
func (s *Service) rankSummary(ctx context.Context, summary string) models.NewsRank {
	resp, err := s.complete(ctx, rankPrompt+summary, 100)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Ranking call failed")
		return models.Unranked()
	}
	return ParseRank(resp)
}

// AdhocSummarize serves the interactive summarize endpoint: explain how
// a document relates to the query the user searched for.
func (s *Service) AdhocSummarize(ctx context.Context, text, query string) (string, error) {
	if len(text) > adhocInputLimit {
		text = text[:adhocInputLimit]
	}

	prompt := fmt.Sprintf("You are analyzing declassified DOJ documents from the Epstein case. The user searched for: %q\n\nHere is the relevant document text:\n\n%s\n\nProvide a clear, factual summary of what this document contains and how it relates to the search query. Be specific about names, dates, and events mentioned.", query, text)

	return s.complete(ctx, prompt, 1024)
}

func (s *Service) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return completeWithRetry(ctx, s.config.MaxRetries, func() (string, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return s.provider.Complete(ctx, prompt, maxTokens)
	})
}
