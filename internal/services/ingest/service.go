package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// Service walks a source directory and loads every PDF it finds into
// storage as a document with ordered pages. Already-ingested filenames
// are skipped so reruns are no-ops for existing documents.
type Service struct {
	documents interfaces.DocumentStorage
	extractor interfaces.Extractor
	logger    arbor.ILogger
}

// Result summarizes one ingestion run
type Result struct {
	Found    int
	Ingested int
	Skipped  int
	Failed   int
}

// NewService creates a new ingestion service
func NewService(documents interfaces.DocumentStorage, extractor interfaces.Extractor, logger arbor.ILogger) *Service {
	return &Service{
		documents: documents,
		extractor: extractor,
		logger:    logger,
	}
}

// Run ingests every PDF under sourceDir. Per-document extraction
// failures are logged and skipped; the batch continues.
func (s *Service) Run(ctx context.Context, sourceDir string) (*Result, error) {
	batesMap, err := LoadManifests(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load bates manifests: %w", err)
	}
	if len(batesMap) > 0 {
		s.logger.Info().Int("entries", len(batesMap)).Msg("Loaded bates manifest")
	}

	pdfs, err := findPDFs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory: %w", err)
	}

	result := &Result{Found: len(pdfs)}
	s.logger.Info().Int("count", len(pdfs)).Str("dir", sourceDir).Msg("Found PDFs")

	for _, path := range pdfs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		filename := filepath.Base(path)

		exists, err := s.documents.DocumentExists(ctx, filename)
		if err != nil {
			return result, fmt.Errorf("failed to check document %s: %w", filename, err)
		}
		if exists {
			s.logger.Debug().Str("filename", filename).Msg("Skipping already ingested document")
			result.Skipped++
			continue
		}

		if err := s.ingestOne(ctx, path, filename, batesMap); err != nil {
			s.logger.Warn().Err(err).Str("filename", filename).Msg("Failed to ingest document")
			result.Failed++
			continue
		}
		result.Ingested++
	}

	s.logger.Info().
		Int("ingested", result.Ingested).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Ingestion complete")

	return result, nil
}

func (s *Service) ingestOne(ctx context.Context, path, filename string, batesMap map[string]string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	pages, err := s.extractor.ExtractPages(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to extract pages: %w", err)
	}

	pageTexts := make([]string, len(pages))
	for i, p := range pages {
		pageTexts[i] = p.Text
	}

	// The bates range starts at the filename stem; the end comes from
	// the production manifest when one covers this document.
	batesStart := strings.TrimSuffix(filename, filepath.Ext(filename))
	doc := &models.Document{
		Filename:   filename,
		Filepath:   path,
		FullText:   strings.Join(pageTexts, models.PageSeparator),
		BatesStart: batesStart,
		BatesEnd:   batesMap[batesStart],
	}

	if _, err := s.documents.SaveDocument(ctx, doc, pageTexts); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	s.logger.Info().Str("filename", filename).Int("pages", len(pageTexts)).Msg("Ingested document")
	return nil
}

func findPDFs(dir string) ([]string, error) {
	var pdfs []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			pdfs = append(pdfs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pdfs)
	return pdfs, nil
}
