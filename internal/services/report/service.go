package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// batchSize bounds how many summaries go into one extraction prompt
const batchSize = 10

// minNewsScore selects which summaries feed the report
const minNewsScore = 50

const extractPrompt = `You are a legal analyst reviewing summaries of declassified DOJ Epstein case documents (public court records released under the Epstein Files Transparency Act).

Extract all allegations, claims, and connections involving named PUBLIC FIGURES (politicians, billionaires, celebrities, executives, royalty, lawyers, etc).

For each person, output a JSON object with:
- "name": full name
- "role": their public role/title
- "allegations": list of specific factual claims from the documents
- "sources": list of source document filenames
- "severity": "critical" | "high" | "medium" | "low"

Output ONLY a JSON array. No markdown, no explanation.

Document summaries:

`

// Service aggregates high-newsworthiness summaries into a
// severity-sorted public-figures report rendered as a PDF.
type Service struct {
	documents interfaces.DocumentStorage
	provider  interfaces.LLMProvider
	config    *common.EnrichConfig
	logger    arbor.ILogger
}

// NewService creates a new report service
func NewService(documents interfaces.DocumentStorage, provider interfaces.LLMProvider, config *common.EnrichConfig, logger arbor.ILogger) *Service {
	return &Service{
		documents: documents,
		provider:  provider,
		config:    config,
		logger:    logger,
	}
}

// Generate builds the report and writes it to outputPath as a PDF.
// Returns the people profiled.
func (s *Service) Generate(ctx context.Context, outputPath string) ([]*models.ReportPerson, error) {
	docs, err := s.documents.ListSummaries(ctx, minNewsScore)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no summaries with news score >= %d", minNewsScore)
	}

	s.logger.Info().Int("documents", len(docs)).Msg("Generating report")

	var all []*models.ReportPerson
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		batch := docs[i:end]

		var batchText strings.Builder
		for _, doc := range batch {
			fmt.Fprintf(&batchText, "--- %s (score:%d) ---\n%s\n\n", doc.Filename, doc.NewsScore, doc.AISummary)
		}

		resp, err := s.provider.Complete(ctx, extractPrompt+batchText.String(), 16384)
		if err != nil {
			s.logger.Warn().Err(err).Int("batch", i/batchSize+1).Msg("Extraction batch failed")
			continue
		}

		people := ParsePeople(resp)
		s.logger.Info().
			Int("batch", i/batchSize+1).
			Int("people", len(people)).
			Msg("Extracted people from batch")
		all = append(all, people...)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	people := MergePeople(all)
	s.logger.Info().Int("people", len(people)).Msg("Report aggregation complete")

	if err := RenderPDF(people, len(docs), outputPath); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return people, nil
}
