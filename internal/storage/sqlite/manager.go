package sqlite

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/interfaces"
)

// Manager bundles the storage interfaces over one shared database
// connection so services receive stores, not connection details.
type Manager struct {
	db        *SQLiteDB
	documents interfaces.DocumentStorage
	pages     interfaces.PageStorage
	search    interfaces.SearchIndex
	logger    arbor.ILogger
}

// NewManager opens the database and wires up all storage instances
func NewManager(config *common.SQLiteConfig, logger arbor.ILogger) (*Manager, error) {
	db, err := NewSQLiteDB(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Manager{
		db:        db,
		documents: NewDocumentStorage(db, logger),
		pages:     NewPageStorage(db, logger),
		search:    NewSearchIndex(db, logger),
		logger:    logger,
	}, nil
}

// DocumentStorage returns the document storage instance
func (m *Manager) DocumentStorage() interfaces.DocumentStorage {
	return m.documents
}

// PageStorage returns the page storage instance
func (m *Manager) PageStorage() interfaces.PageStorage {
	return m.pages
}

// SearchIndex returns the search index instance
func (m *Manager) SearchIndex() interfaces.SearchIndex {
	return m.search
}

// Close closes the underlying database connection
func (m *Manager) Close() error {
	m.logger.Info().Msg("Closing storage manager")
	return m.db.Close()
}

var _ interfaces.StorageManager = (*Manager)(nil)
