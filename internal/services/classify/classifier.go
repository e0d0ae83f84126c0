package classify

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

// The pattern checks below run in a fixed order. Later checks may
// override the type while scores accumulate via max, so every check
// must run; only the empty and garbage gates are terminal.
var (
	emailHeaderRe    = regexp.MustCompile(`(?m)^(from:|sent:|to:|subject:|date:)`)
	depositionRe     = regexp.MustCompile(`\b(deposition|testimony|grand jury|q\.\s|a\.\s|witness|sworn)`)
	lawEnforcementRe = regexp.MustCompile(`\b(fbi|case number|case summary|investigation|indicted|arrest|convicted|bureau)`)
	legalFilingRe    = regexp.MustCompile(`\b(court|motion|order|plaintiff|defendant|docket|filed|judge|verdict|sentence)`)
	phoneLogRe       = regexp.MustCompile(`(fax activity|call detail|call log|phone.*record)`)
	evidenceListRe   = regexp.MustCompile(`(evidence|property|contents|item quantity)`)
)

// watchlist names boost the score by 10 each when present
var watchlist = []string{
	"epstein", "maxwell", "ghislaine", "prince andrew", "giuffre", "roberts",
	"dershowitz", "clinton", "trump", "black", "wexner", "brunel", "dubin",
}

// Classify maps document text to a heuristic (type, interest score)
// pair. Pure function; never fails, always returns a type from the
// closed set and a score in [0,100].
func Classify(text string, pageCount int) (string, int) {
	stripped := strings.TrimSpace(text)
	charCount := len(stripped)

	if charCount < 20 {
		return models.DocTypeEmpty, 0
	}

	letters := 0
	for _, r := range stripped {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if float64(letters)/float64(charCount) < 0.3 {
		return models.DocTypeScanGarbage, 0
	}

	lower := strings.ToLower(stripped)

	score := 0
	docType := models.DocTypeOther

	if emailHeaderRe.MatchString(lower) {
		docType = models.DocTypeEmail
		score = 60
	}

	if depositionRe.MatchString(lower) {
		if docType == models.DocTypeOther {
			docType = models.DocTypeDeposition
		}
		score = max(score, 70)
	}

	if lawEnforcementRe.MatchString(lower) {
		docType = models.DocTypeLawEnforcement
		score = max(score, 80)
	}

	if legalFilingRe.MatchString(lower) {
		if docType == models.DocTypeOther {
			docType = models.DocTypeLegal
		}
		score = max(score, 50)
	}

	if phoneLogRe.MatchString(lower) {
		docType = models.DocTypePhoneRecords
		score = 20
	}

	if strings.Count(lower, ".tif") > 3 || strings.Count(lower, ".jpg") > 3 || strings.Count(lower, ".pdf") > 5 {
		docType = models.DocTypeFileListing
		score = 10
	}

	if evidenceListRe.MatchString(lower) {
		docType = models.DocTypeEvidenceList
		score = max(score, 30)
	}

	for _, name := range watchlist {
		if strings.Contains(lower, name) {
			score += 10
		}
	}

	if charCount > 1000 {
		score += 10
	}
	if charCount > 5000 {
		score += 10
	}

	score = min(score, 100)

	if docType == models.DocTypeOther && score < 20 {
		if charCount < 100 {
			return models.DocTypeMinimal, score
		}
		docType = models.DocTypeDocument
	}

	return docType, score
}

// Service applies Classify across the stored corpus
type Service struct {
	documents interfaces.DocumentStorage
	logger    arbor.ILogger
}

// Result summarizes one classification run
type Result struct {
	Classified int
	ByType     map[string]int
}

// NewService creates a new classification service
func NewService(documents interfaces.DocumentStorage, logger arbor.ILogger) *Service {
	return &Service{
		documents: documents,
		logger:    logger,
	}
}

// Run classifies every document from its full text, overwriting any
// previous classification.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	docs, err := s.documents.ListForClassification(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := &Result{ByType: make(map[string]int)}
	s.logger.Info().Int("documents", len(docs)).Msg("Classifying documents")

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		docType, score := Classify(doc.FullText, doc.PageCount)
		if err := s.documents.UpdateClassification(ctx, doc.ID, docType, score); err != nil {
			return result, fmt.Errorf("failed to update document %d: %w", doc.ID, err)
		}
		result.Classified++
		result.ByType[docType]++
	}

	for docType, count := range result.ByType {
		s.logger.Info().Str("type", docType).Int("count", count).Msg("Classified")
	}

	return result, nil
}
