package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// SearchIndex implements interfaces.SearchIndex over the FTS5 search
// table. Rebuild takes the write lock so queries never observe the
// window where the table has been dropped but not yet repopulated.
type SearchIndex struct {
	db     *SQLiteDB
	logger arbor.ILogger
	mu     sync.RWMutex
}

// NewSearchIndex creates a new search index instance
func NewSearchIndex(db *SQLiteDB, logger arbor.ILogger) interfaces.SearchIndex {
	return &SearchIndex{
		db:     db,
		logger: logger,
	}
}

// Rebuild drops and recreates the FTS table, then reindexes every page.
// Returns the number of pages indexed.
func (s *SearchIndex) Rebuild(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS search"); err != nil {
		return 0, fmt.Errorf("failed to drop search table: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"CREATE VIRTUAL TABLE search USING fts5(filename, page_num, text)"); err != nil {
		return 0, fmt.Errorf("failed to create search table: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO search (rowid, filename, page_num, text)
		SELECT p.id, d.filename, p.page_num, p.text
		FROM pages p
		JOIN documents d ON d.id = p.doc_id
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to populate search table: %w", err)
	}

	indexed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rebuild: %w", err)
	}

	s.logger.Info().Int64("pages", indexed).Msg("Search index rebuilt")
	return int(indexed), nil
}

// Match runs an FTS5 MATCH query and returns ranked hits with
// highlighted snippets.
func (s *SearchIndex) Match(ctx context.Context, ftsQuery string, limit int) ([]*models.SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.db.QueryContext(ctx, `
		SELECT p.doc_id, s.filename, p.page_num,
		       snippet(search, 2, '<mark>', '</mark>', '...', 40)
		FROM search s
		JOIN pages p ON p.id = s.rowid
		WHERE search MATCH ?
		ORDER BY rank
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHits(rows)
}

// Scan runs the LIKE fallback over page text. The snippet is a window
// of raw text centred near the first occurrence of firstToken.
func (s *SearchIndex) Scan(ctx context.Context, likePattern, firstToken string, limit int) ([]*models.SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.db.QueryContext(ctx, `
		SELECT p.doc_id, d.filename, p.page_num,
		       substr(p.text, max(1, instr(lower(p.text), lower(?)) - 80), 200)
		FROM pages p
		JOIN documents d ON d.id = p.doc_id
		WHERE lower(p.text) LIKE lower(?)
		ORDER BY p.doc_id, p.page_num
		LIMIT ?
	`, firstToken, likePattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHits(rows)
}

func scanHits(rows *sql.Rows) ([]*models.SearchHit, error) {
	hits := make([]*models.SearchHit, 0)
	for rows.Next() {
		var hit models.SearchHit
		if err := rows.Scan(&hit.DocID, &hit.Filename, &hit.PageNum, &hit.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, &hit)
	}
	return hits, rows.Err()
}
