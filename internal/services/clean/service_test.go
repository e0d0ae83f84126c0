package clean

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/models"
	"github.com/ternarybob/scrutari/internal/storage/sqlite"
)

func setupTestManager(t *testing.T) *sqlite.Manager {
	config := &common.SQLiteConfig{
		Path:          t.TempDir() + "/test.db",
		CacheSizeMB:   10,
		BusyTimeoutMS: 5000,
		WALMode:       false,
	}

	manager, err := sqlite.NewManager(config, arbor.NewLogger())
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager
}

func TestRunRecomputesFullTextFromPages(t *testing.T) {
	manager := setupTestManager(t)
	ctx := context.Background()

	dirtyPages := []string{
		"1\nEFTA00000001\nthe wit\nness described the scene in detail",
		"Page 2 of 2\nTHIS PAGE WAS NOT SCANNED",
	}
	doc := &models.Document{
		Filename: "EFTA00000001.pdf",
		Filepath: "/tmp/EFTA00000001.pdf",
		FullText: strings.Join(dirtyPages, models.PageSeparator),
	}
	id, err := manager.DocumentStorage().SaveDocument(ctx, doc, dirtyPages)
	require.NoError(t, err)

	svc := NewService(manager, arbor.NewLogger())
	result, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 2, result.Indexed)

	// full text must be exactly the page-order join of the stored pages
	pages, err := manager.PageStorage().GetDocumentPages(ctx, id)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	assert.Equal(t, "the wit ness described the scene in detail", texts[0])
	assert.Equal(t, "", texts[1])

	stored, err := manager.DocumentStorage().GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(texts, models.PageSeparator), stored.FullText)
}

func TestRunIsIdempotent(t *testing.T) {
	manager := setupTestManager(t)
	ctx := context.Background()

	pages := []string{"12\nEFTA00000042\nthe interview cov\nered the full timeline"}
	doc := &models.Document{
		Filename: "EFTA00000042.pdf",
		Filepath: "/tmp/EFTA00000042.pdf",
		FullText: strings.Join(pages, models.PageSeparator),
	}
	id, err := manager.DocumentStorage().SaveDocument(ctx, doc, pages)
	require.NoError(t, err)

	svc := NewService(manager, arbor.NewLogger())
	_, err = svc.Run(ctx)
	require.NoError(t, err)

	first, err := manager.DocumentStorage().GetDocument(ctx, id)
	require.NoError(t, err)

	second, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Updated)

	after, err := manager.DocumentStorage().GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.FullText, after.FullText)
}
