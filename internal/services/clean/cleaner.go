package clean

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

var (
	lineNumberRe = regexp.MustCompile(`^\d{1,3}$`)
	batesStampRe = regexp.MustCompile(`^EFTA\d+$`)
	pageHeaderRe = regexp.MustCompile(`^Page \d+ of \d+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
	brokenLineRe = regexp.MustCompile(`([a-z,])\n([a-z])`)
)

// CleanText strips structural noise from one page of extracted text:
// standalone line numbers, bates stamps, page headers, scan-failure
// markers. Pages under 10 stripped characters pass through untouched.
func CleanText(text string) string {
	if len(strings.TrimSpace(text)) < 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if lineNumberRe.MatchString(s) {
			continue
		}
		if batesStampRe.MatchString(s) {
			continue
		}
		if pageHeaderRe.MatchString(s) {
			continue
		}
		if strings.Contains(strings.ToUpper(s), "WAS NOT SCANNED") {
			continue
		}
		cleaned = append(cleaned, s)
	}

	text = strings.Join(cleaned, "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")

	// rejoin lines broken mid-sentence (lowercase continuation). The
	// replacement consumes the continuation character, so repeat until
	// stable to catch runs of single-character lines.
	for {
		replaced := brokenLineRe.ReplaceAllString(text, "$1 $2")
		if replaced == text {
			break
		}
		text = replaced
	}

	return strings.TrimSpace(text)
}

// Service runs the cleaning pass over every stored page, recomputes
// each document's full text from its cleaned pages, and rebuilds the
// search index so queries see the cleaned text.
type Service struct {
	documents interfaces.DocumentStorage
	pages     interfaces.PageStorage
	search    interfaces.SearchIndex
	logger    arbor.ILogger
}

// Result summarizes one cleaning run
type Result struct {
	Pages   int
	Updated int
	Indexed int
}

// NewService creates a new cleaning service
func NewService(storage interfaces.StorageManager, logger arbor.ILogger) *Service {
	return &Service{
		documents: storage.DocumentStorage(),
		pages:     storage.PageStorage(),
		search:    storage.SearchIndex(),
		logger:    logger,
	}
}

// Run cleans all pages, refreshes document full text, and rebuilds the
// search index. Safe to rerun; cleaning is a fixed point after one pass.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	pages, err := s.pages.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	result := &Result{Pages: len(pages)}
	s.logger.Info().Int("pages", len(pages)).Msg("Cleaning pages")

	docIDs := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, page := range pages {
		if !seen[page.DocID] {
			seen[page.DocID] = true
			docIDs = append(docIDs, page.DocID)
		}

		cleaned := CleanText(page.Text)
		if cleaned == page.Text {
			continue
		}
		if err := s.pages.UpdatePageText(ctx, page.ID, cleaned); err != nil {
			return result, fmt.Errorf("failed to update page %d: %w", page.ID, err)
		}
		result.Updated++
	}

	// full_text must stay the exact page-order join of cleaned pages
	for _, docID := range docIDs {
		docPages, err := s.pages.GetDocumentPages(ctx, docID)
		if err != nil {
			return result, fmt.Errorf("failed to load pages for document %d: %w", docID, err)
		}
		texts := make([]string, len(docPages))
		for i, p := range docPages {
			texts[i] = p.Text
		}
		if err := s.documents.UpdateFullText(ctx, docID, strings.Join(texts, models.PageSeparator)); err != nil {
			return result, fmt.Errorf("failed to update full text for document %d: %w", docID, err)
		}
	}

	indexed, err := s.search.Rebuild(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to rebuild search index: %w", err)
	}
	result.Indexed = indexed

	s.logger.Info().
		Int("updated", result.Updated).
		Int("indexed", result.Indexed).
		Msg("Cleaning complete")

	return result, nil
}
