package sqlite

import (
	"context"
	"database/sql"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// PageStorage implements interfaces.PageStorage
type PageStorage struct {
	db     *SQLiteDB
	logger arbor.ILogger
}

// NewPageStorage creates a new page storage instance
func NewPageStorage(db *SQLiteDB, logger arbor.ILogger) interfaces.PageStorage {
	return &PageStorage{
		db:     db,
		logger: logger,
	}
}

// ListPages returns every page in the corpus ordered by document then
// page number. The cleaning pass walks this to rewrite page text.
func (p *PageStorage) ListPages(ctx context.Context) ([]*models.Page, error) {
	rows, err := p.db.db.QueryContext(ctx,
		"SELECT id, doc_id, page_num, text FROM pages ORDER BY doc_id, page_num")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPages(rows)
}

// GetDocumentPages returns a document's pages in page order
func (p *PageStorage) GetDocumentPages(ctx context.Context, docID int64) ([]*models.Page, error) {
	rows, err := p.db.db.QueryContext(ctx,
		"SELECT id, doc_id, page_num, text FROM pages WHERE doc_id = ? ORDER BY page_num", docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPages(rows)
}

// UpdatePageText overwrites a single page's text
func (p *PageStorage) UpdatePageText(ctx context.Context, id int64, text string) error {
	res, err := p.db.db.ExecContext(ctx, "UPDATE pages SET text = ? WHERE id = ?", text, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func scanPages(rows *sql.Rows) ([]*models.Page, error) {
	pages := make([]*models.Page, 0)
	for rows.Next() {
		var page models.Page
		if err := rows.Scan(&page.ID, &page.DocID, &page.PageNum, &page.Text); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}
