package condense

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// boilerplatePattern pairs a compiled pattern with its replacement.
// Patterns that run to the next blank line capture the separator and
// restore it so page structure survives the strip.
type boilerplatePattern struct {
	re   *regexp.Regexp
	repl string
}

// Boilerplate regions stripped from retained pages. Order matters:
// overlapping patterns compose, so this list must not be reordered or
// deduplicated.
var boilerplatePatterns = []boilerplatePattern{
	// evidence envelope / chain of custody
	{regexp.MustCompile(`(?is)chain of custody.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)evidence envelope.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)enclosure:.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?im)(?:original|duplicate|enhanced original)\s*$`), ""},
	{regexp.MustCompile(`(?is)magnetic tape.*?computer disk.*?printed material`), ""},
	{regexp.MustCompile(`(?is)court authorized intercept.*?(\n\n|$)`), "$1"},
	// email boilerplate
	{regexp.MustCompile(`(?is)please consider the environment before printing.*`), ""},
	{regexp.MustCompile(`(?is)this communication may contain confidential.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)this e-?mail (?:and any|is|may).*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)if you (?:are not|have received) the intended recipient.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)disclaimer:.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)privileged.*?attorney.*?client.*?(\n\n|$)`), "$1"},
	// scan artifacts
	{regexp.MustCompile(`(?i)item\s+was\s+not\s+scanned\s+description`), ""},
	// page headers/footers
	{regexp.MustCompile(`(?is)grand jury material.*?criminal procedure`), ""},
	{regexp.MustCompile(`(?is)this document contains neither recommendations nor conclusions of the fbi.*?(\n\n|$)`), "$1"},
	{regexp.MustCompile(`(?is)it is the property of the fbi.*?(\n\n|$)`), "$1"},
	// repeated exhibit stamps
	{regexp.MustCompile(`(?:GM_[A-Z]+_\d+\s*)+`), ""},
	// image file listings
	{regexp.MustCompile(`(?:[A-Z]+\d+[._]\w+\s*){3,}`), ""},
}

var collapseNewlines = regexp.MustCompile(`\n{3,}`)

// IsJunkPage reports whether a page carries no substantive content:
// too short, too symbol-heavy, or mostly numeric.
func IsJunkPage(text string) bool {
	s := strings.TrimSpace(text)
	if len(s) < 15 {
		return true
	}

	letters := 0
	digits := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
		}
		if unicode.IsDigit(r) {
			digits++
		}
	}

	if float64(letters)/float64(len(s)) < 0.25 {
		return true
	}
	if len(s) > 50 && float64(digits)/float64(len(s)) > 0.4 {
		return true
	}
	return false
}

// Condense strips junk pages and boilerplate regions from a document's
// full text. Pure function; condensing its own output is a no-op apart
// from pages that shrink below the retention floor.
func Condense(fullText string) string {
	if fullText == "" {
		return ""
	}

	pages := strings.Split(fullText, models.PageSeparator)
	kept := make([]string, 0, len(pages))
	for _, page := range pages {
		if IsJunkPage(page) {
			continue
		}
		cleaned := page
		for _, p := range boilerplatePatterns {
			cleaned = p.re.ReplaceAllString(cleaned, p.repl)
		}
		cleaned = strings.TrimSpace(collapseNewlines.ReplaceAllString(cleaned, "\n\n"))
		if len(cleaned) > 15 {
			kept = append(kept, cleaned)
		}
	}

	return strings.Join(kept, models.PageSeparator)
}

// Service condenses every document and reclassifies it from the
// condensed text, overwriting the first-pass classification.
type Service struct {
	documents interfaces.DocumentStorage
	logger    arbor.ILogger
}

// Result summarizes one condensation run
type Result struct {
	Condensed   int
	Highlights  int
	FilteredOut int
}

// NewService creates a new condensation service
func NewService(documents interfaces.DocumentStorage, logger arbor.ILogger) *Service {
	return &Service{
		documents: documents,
		logger:    logger,
	}
}

// Run condenses and reclassifies the whole corpus
func (s *Service) Run(ctx context.Context) (*Result, error) {
	docs, err := s.documents.ListForClassification(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := &Result{}
	s.logger.Info().Int("documents", len(docs)).Msg("Condensing documents")

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		condensed := Condense(doc.FullText)
		docType, score := Reclassify(doc.FullText, condensed, doc.DocType, doc.PageCount)
		if err := s.documents.UpdateCondensed(ctx, doc.ID, condensed, docType, score); err != nil {
			return result, fmt.Errorf("failed to update document %d: %w", doc.ID, err)
		}
		result.Condensed++
		if score >= 40 {
			result.Highlights++
		} else {
			result.FilteredOut++
		}
	}

	s.logger.Info().
		Int("condensed", result.Condensed).
		Int("highlights", result.Highlights).
		Int("filtered", result.FilteredOut).
		Msg("Condensation complete")

	return result, nil
}
