package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// DocumentStorage implements interfaces.DocumentStorage
type DocumentStorage struct {
	db     *SQLiteDB
	logger arbor.ILogger
}

// NewDocumentStorage creates a new document storage instance
func NewDocumentStorage(db *SQLiteDB, logger arbor.ILogger) interfaces.DocumentStorage {
	return &DocumentStorage{
		db:     db,
		logger: logger,
	}
}

// SaveDocument inserts a document and its pages in one transaction and
// returns the new document ID. Page numbers are assigned 1-based from
// the slice order.
func (d *DocumentStorage) SaveDocument(ctx context.Context, doc *models.Document, pageTexts []string) (int64, error) {
	tx, err := d.db.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO documents (filename, filepath, page_count, full_text, bates_start, bates_end, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.Filename,
		doc.Filepath,
		len(pageTexts),
		doc.FullText,
		doc.BatesStart,
		doc.BatesEnd,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document %s: %w", doc.Filename, err)
	}

	docID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO pages (doc_id, page_num, text) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for i, text := range pageTexts {
		if _, err := stmt.ExecContext(ctx, docID, i+1, text); err != nil {
			return 0, fmt.Errorf("failed to insert page %d of %s: %w", i+1, doc.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit document %s: %w", doc.Filename, err)
	}

	doc.ID = docID
	doc.PageCount = len(pageTexts)
	return docID, nil
}

// DocumentExists reports whether a filename has already been ingested
func (d *DocumentStorage) DocumentExists(ctx context.Context, filename string) (bool, error) {
	var id int64
	err := d.db.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE filename = ?", filename).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetDocument retrieves a full document row by ID
func (d *DocumentStorage) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	row := d.db.db.QueryRowContext(ctx, `
		SELECT id, filename, filepath, page_count, full_text, condensed,
		       bates_start, bates_end, doc_type, interest_score,
		       ai_summary, news_score, news_reason
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrNotFound
	}
	return doc, err
}

// ListDocuments lists documents filtered by minimum score and optional
// type, sorted by interest score descending then filename.
func (d *DocumentStorage) ListDocuments(ctx context.Context, opts interfaces.ListOptions) ([]*models.Document, error) {
	query := `
		SELECT id, filename, filepath, page_count, '', '',
		       bates_start, bates_end, doc_type, interest_score,
		       '', news_score, ''
		FROM documents
		WHERE interest_score >= ?
	`
	args := []any{opts.MinScore}

	if opts.DocType != "" {
		query += " AND doc_type = ?"
		args = append(args, opts.DocType)
	}

	query += " ORDER BY interest_score DESC, filename"

	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := d.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListForClassification returns every document with the text fields the
// classification passes need, in insertion order.
func (d *DocumentStorage) ListForClassification(ctx context.Context) ([]*models.Document, error) {
	rows, err := d.db.db.QueryContext(ctx, `
		SELECT id, filename, filepath, page_count, full_text, condensed,
		       bates_start, bates_end, doc_type, interest_score,
		       ai_summary, news_score, news_reason
		FROM documents
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// UpdateClassification overwrites a document's type and interest score
func (d *DocumentStorage) UpdateClassification(ctx context.Context, id int64, docType string, score int) error {
	_, err := d.db.db.ExecContext(ctx,
		"UPDATE documents SET doc_type = ?, interest_score = ?, updated_at = ? WHERE id = ?",
		docType, score, time.Now().Unix(), id)
	return err
}

// UpdateCondensed overwrites the condensed text together with the
// reclassified type and score in one statement.
func (d *DocumentStorage) UpdateCondensed(ctx context.Context, id int64, condensed, docType string, score int) error {
	_, err := d.db.db.ExecContext(ctx,
		"UPDATE documents SET condensed = ?, doc_type = ?, interest_score = ?, updated_at = ? WHERE id = ?",
		condensed, docType, score, time.Now().Unix(), id)
	return err
}

// UpdateFullText overwrites a document's full text
func (d *DocumentStorage) UpdateFullText(ctx context.Context, id int64, fullText string) error {
	_, err := d.db.db.ExecContext(ctx,
		"UPDATE documents SET full_text = ?, updated_at = ? WHERE id = ?",
		fullText, time.Now().Unix(), id)
	return err
}

// ListUnsummarized returns documents at or above minScore with no stored
// summary, most interesting first.
func (d *DocumentStorage) ListUnsummarized(ctx context.Context, minScore int) ([]*models.Document, error) {
	rows, err := d.db.db.QueryContext(ctx, `
		SELECT id, filename, filepath, page_count, full_text, condensed,
		       bates_start, bates_end, doc_type, interest_score,
		       ai_summary, news_score, news_reason
		FROM documents
		WHERE interest_score >= ? AND ai_summary = ''
		ORDER BY interest_score DESC
	`, minScore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// UpdateEnrichment stores the model-produced summary and ranking
func (d *DocumentStorage) UpdateEnrichment(ctx context.Context, id int64, summary string, newsScore int, newsReason string) error {
	_, err := d.db.db.ExecContext(ctx,
		"UPDATE documents SET ai_summary = ?, news_score = ?, news_reason = ?, updated_at = ? WHERE id = ?",
		summary, newsScore, newsReason, time.Now().Unix(), id)
	return err
}

// ListUnranked returns documents that carry a real summary but no news
// score yet, so a failed ranking can be retried on a later run.
func (d *DocumentStorage) ListUnranked(ctx context.Context) ([]*models.Document, error) {
	rows, err := d.db.db.QueryContext(ctx, `
		SELECT id, filename, filepath, page_count, full_text, condensed,
		       bates_start, bates_end, doc_type, interest_score,
		       ai_summary, news_score, news_reason
		FROM documents
		WHERE ai_summary != '' AND ai_summary != ? AND news_score = 0
		ORDER BY interest_score DESC
	`, models.NoExtractableText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// UpdateRank stores a ranking without touching the summary
func (d *DocumentStorage) UpdateRank(ctx context.Context, id int64, newsScore int, newsReason string) error {
	_, err := d.db.db.ExecContext(ctx,
		"UPDATE documents SET news_score = ?, news_reason = ?, updated_at = ? WHERE id = ?",
		newsScore, newsReason, time.Now().Unix(), id)
	return err
}

// ListHighlights returns high-interest documents with an enrichment
// preview, ordered by news score then interest score descending.
func (d *DocumentStorage) ListHighlights(ctx context.Context, minScore int) ([]*models.Highlight, error) {
	rows, err := d.db.db.QueryContext(ctx, `
		SELECT id, filename, page_count, doc_type, interest_score,
		       CASE WHEN ai_summary != '' THEN ai_summary
		            WHEN condensed != '' THEN substr(condensed, 1, 300)
		            ELSE substr(full_text, 1, 300) END,
		       news_score, news_reason
		FROM documents
		WHERE interest_score >= ?
		ORDER BY news_score DESC, interest_score DESC
	`, minScore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	highlights := make([]*models.Highlight, 0)
	for rows.Next() {
		var h models.Highlight
		if err := rows.Scan(&h.ID, &h.Filename, &h.PageCount, &h.DocType, &h.InterestScore,
			&h.Preview, &h.NewsScore, &h.NewsReason); err != nil {
			return nil, err
		}
		highlights = append(highlights, &h)
	}

	return highlights, rows.Err()
}

// ListSummaries returns summarized documents at or above minNewsScore,
// most newsworthy first. Used by the report generator.
func (d *DocumentStorage) ListSummaries(ctx context.Context, minNewsScore int) ([]*models.Document, error) {
	rows, err := d.db.db.QueryContext(ctx, `
		SELECT id, filename, filepath, page_count, '', '',
		       bates_start, bates_end, doc_type, interest_score,
		       ai_summary, news_score, news_reason
		FROM documents
		WHERE ai_summary != '' AND news_score >= ?
		ORDER BY news_score DESC
	`, minNewsScore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// CountByType returns document counts grouped by type, descending
func (d *DocumentStorage) CountByType(ctx context.Context) ([]*models.TypeCount, error) {
	rows, err := d.db.db.QueryContext(ctx,
		"SELECT doc_type, COUNT(*) c FROM documents GROUP BY doc_type ORDER BY c DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]*models.TypeCount, 0)
	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.DocType, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, &tc)
	}

	return counts, rows.Err()
}

// Stats returns corpus-wide document and page counts
func (d *DocumentStorage) Stats(ctx context.Context) (*models.CorpusStats, error) {
	stats := &models.CorpusStats{}
	if err := d.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&stats.Documents); err != nil {
		return nil, err
	}
	if err := d.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&stats.Pages); err != nil {
		return nil, err
	}
	return stats, nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.Filepath,
		&doc.PageCount,
		&doc.FullText,
		&doc.Condensed,
		&doc.BatesStart,
		&doc.BatesEnd,
		&doc.DocType,
		&doc.InterestScore,
		&doc.AISummary,
		&doc.NewsScore,
		&doc.NewsReason,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func scanDocuments(rows *sql.Rows) ([]*models.Document, error) {
	docs := make([]*models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
