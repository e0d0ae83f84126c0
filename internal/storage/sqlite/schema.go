package sqlite

const schemaSQL = `
-- Documents table: one row per ingested source file.
-- Derived columns (full_text, condensed, doc_type, interest_score) are
-- recomputed deterministically on each pipeline rerun.
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY,
	filename TEXT NOT NULL UNIQUE,
	filepath TEXT NOT NULL,
	page_count INTEGER NOT NULL DEFAULT 0,
	full_text TEXT NOT NULL DEFAULT '',
	condensed TEXT NOT NULL DEFAULT '',
	bates_start TEXT NOT NULL DEFAULT '',
	bates_end TEXT NOT NULL DEFAULT '',
	doc_type TEXT NOT NULL DEFAULT '',
	interest_score INTEGER NOT NULL DEFAULT 0,
	ai_summary TEXT NOT NULL DEFAULT '',
	news_score INTEGER NOT NULL DEFAULT 0,
	news_reason TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_score ON documents(interest_score DESC, filename);
CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(doc_type);
CREATE INDEX IF NOT EXISTS idx_documents_news ON documents(news_score DESC);

-- Pages table: ordered page texts owned by a document.
CREATE TABLE IF NOT EXISTS pages (
	id INTEGER PRIMARY KEY,
	doc_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	page_num INTEGER NOT NULL,
	text TEXT NOT NULL DEFAULT '',
	UNIQUE(doc_id, page_num)
);

CREATE INDEX IF NOT EXISTS idx_pages_doc ON pages(doc_id, page_num);

-- FTS5 index over pages, keyed by page id. Kept in sync at insert time
-- by trigger; text mutations require a wholesale rebuild instead.
CREATE VIRTUAL TABLE IF NOT EXISTS search USING fts5(filename, page_num, text);

CREATE TRIGGER IF NOT EXISTS pages_ai AFTER INSERT ON pages BEGIN
	INSERT INTO search(rowid, filename, page_num, text)
	SELECT new.id, d.filename, new.page_num, new.text FROM documents d WHERE d.id = new.doc_id;
END;
`

// InitSchema initializes the database schema
func (s *SQLiteDB) InitSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return err
	}
	s.logger.Debug().Msg("Database schema initialized")
	return nil
}
