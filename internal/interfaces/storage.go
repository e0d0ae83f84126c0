package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/scrutari/internal/models"
)

// ErrNotFound is returned by lookups for rows that do not exist.
var ErrNotFound = errors.New("not found")

// ListOptions filters and bounds document listings.
type ListOptions struct {
	MinScore int
	DocType  string
	Limit    int
	Offset   int
}

// DocumentStorage persists documents and their derived pipeline fields.
type DocumentStorage interface {
	// SaveDocument inserts a new document with its pages in one
	// transaction and returns the assigned ID.
	SaveDocument(ctx context.Context, doc *models.Document, pageTexts []string) (int64, error)

	// DocumentExists reports whether a document with the filename has
	// already been ingested.
	DocumentExists(ctx context.Context, filename string) (bool, error)

	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	ListDocuments(ctx context.Context, opts ListOptions) ([]*models.Document, error)

	// ListForClassification returns id, full text and page count for
	// every document, in insertion order.
	ListForClassification(ctx context.Context) ([]*models.Document, error)

	UpdateClassification(ctx context.Context, id int64, docType string, score int) error
	UpdateCondensed(ctx context.Context, id int64, condensed, docType string, score int) error
	UpdateFullText(ctx context.Context, id int64, fullText string) error

	// ListUnsummarized returns documents at or above minScore that have
	// no stored summary, most interesting first.
	ListUnsummarized(ctx context.Context, minScore int) ([]*models.Document, error)
	UpdateEnrichment(ctx context.Context, id int64, summary string, newsScore int, newsReason string) error

	// ListUnranked returns summarized documents still carrying news
	// score 0, excluding no-text markers.
	ListUnranked(ctx context.Context) ([]*models.Document, error)
	UpdateRank(ctx context.Context, id int64, newsScore int, newsReason string) error

	ListHighlights(ctx context.Context, minScore int) ([]*models.Highlight, error)
	ListSummaries(ctx context.Context, minNewsScore int) ([]*models.Document, error)
	CountByType(ctx context.Context) ([]*models.TypeCount, error)
	Stats(ctx context.Context) (*models.CorpusStats, error)
}

// PageStorage persists page rows and page text mutations.
type PageStorage interface {
	ListPages(ctx context.Context) ([]*models.Page, error)
	GetDocumentPages(ctx context.Context, docID int64) ([]*models.Page, error)
	UpdatePageText(ctx context.Context, id int64, text string) error
}

// SearchIndex is the full-text index over pages plus the substring
// fallback scan. Rebuild drops and recreates the index wholesale; it
// must not run concurrently with queries.
type SearchIndex interface {
	Rebuild(ctx context.Context) (int, error)
	// Match runs an FTS prefix query and returns engine-ranked hits.
	Match(ctx context.Context, ftsQuery string, limit int) ([]*models.SearchHit, error)
	// Scan runs the case-insensitive substring fallback, ordered by
	// document id then page number.
	Scan(ctx context.Context, likePattern, firstToken string, limit int) ([]*models.SearchHit, error)
}

// StorageManager bundles the storage interfaces over one shared handle.
type StorageManager interface {
	DocumentStorage() DocumentStorage
	PageStorage() PageStorage
	SearchIndex() SearchIndex
	Close() error
}
