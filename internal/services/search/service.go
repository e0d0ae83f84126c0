package search

import (
	"context"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// maxResults caps both search tiers
const maxResults = 100

var nonWordRe = regexp.MustCompile(`[^\w]`)

// Service resolves free-text queries against the page index. The
// primary tier is a prefix FTS match ordered by relevance; any error
// or empty result falls back to a case-insensitive substring scan
// ordered by document then page.
type Service struct {
	index  interfaces.SearchIndex
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.SearchService = (*Service)(nil)

// NewService creates a new search service
func NewService(index interfaces.SearchIndex, logger arbor.ILogger) *Service {
	return &Service{
		index:  index,
		logger: logger,
	}
}

// Tokenize splits a query on whitespace and strips non-word characters
// from each token, discarding tokens that end up empty.
func Tokenize(query string) []string {
	parts := strings.Fields(query)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := nonWordRe.ReplaceAllString(p, "")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Search resolves a query into (document, page, snippet) hits. A query
// with no usable tokens returns an empty result without touching the
// index. The FTS tier takes the stripped tokens; the substring fallback
// takes the raw whitespace-split tokens, so punctuation inside a term
// (o'brien) still matches. Errors on either tier are never surfaced;
// the worst case is an empty result.
func (s *Service) Search(ctx context.Context, query string) ([]*models.SearchHit, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []*models.SearchHit{}, nil
	}

	ftsQuery := buildFTSQuery(tokens)
	hits, err := s.index.Match(ctx, ftsQuery, maxResults)
	if err == nil && len(hits) > 0 {
		return hits, nil
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("query", query).Msg("FTS query failed, falling back to substring scan")
	}

	rawTokens := strings.Fields(query)
	hits, err = s.index.Scan(ctx, buildLikePattern(rawTokens), rawTokens[0], maxResults)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Fallback search failed")
		return []*models.SearchHit{}, nil
	}
	return hits, nil
}

// buildFTSQuery conjoins prefix-wildcarded tokens: `foo* AND bar*`
func buildFTSQuery(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t + "*"
	}
	return strings.Join(parts, " AND ")
}

// buildLikePattern joins tokens into one substring pattern: `%foo%bar%`
func buildLikePattern(tokens []string) string {
	return "%" + strings.Join(tokens, "%") + "%"
}
