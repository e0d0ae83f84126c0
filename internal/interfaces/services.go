package interfaces

import (
	"context"

	"github.com/ternarybob/scrutari/internal/models"
)

// PageContent is one extracted page of a source document.
type PageContent struct {
	PageNumber int
	Text       string
}

// Extractor converts a document byte stream into per-page plain text.
// Extraction may fail per document; callers treat that as a skip.
type Extractor interface {
	ExtractPages(ctx context.Context, content []byte) ([]PageContent, error)
}

// LLMProvider is the external enrichment collaborator. Complete returns
// free text for a prompt or an error; rate-limit errors are retryable.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	Name() string
	Close() error
}

// SearchService resolves a free-text query into page hits.
type SearchService interface {
	Search(ctx context.Context, query string) ([]*models.SearchHit, error)
}
