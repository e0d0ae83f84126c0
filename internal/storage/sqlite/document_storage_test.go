package sqlite

import (
	"context"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/interfaces"
	"github.com/ternarybob/scrutari/internal/models"
)

// setupTestDB creates a temp-dir SQLite database for testing
func setupTestDB(t *testing.T) (*SQLiteDB, func()) {
	tempDir := t.TempDir()

	config := &common.SQLiteConfig{
		Path:          tempDir + "/test.db",
		CacheSizeMB:   10,
		BusyTimeoutMS: 5000,
		WALMode:       false, // simpler test cleanup
	}

	db, err := NewSQLiteDB(arbor.NewLogger(), config)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	return db, func() { db.Close() }
}

func saveTestDoc(t *testing.T, storage interfaces.DocumentStorage, filename string, pages []string) int64 {
	t.Helper()
	doc := &models.Document{
		Filename:   filename,
		Filepath:   "/tmp/" + filename,
		BatesStart: filename,
	}
	id, err := storage.SaveDocument(context.Background(), doc, pages)
	if err != nil {
		t.Fatalf("SaveDocument(%s) failed: %v", filename, err)
	}
	return id
}

func TestSaveDocumentAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	id := saveTestDoc(t, storage, "DOC-001.pdf", []string{"first page", "second page"})

	doc, err := storage.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc.Filename != "DOC-001.pdf" {
		t.Errorf("Filename = %q, want DOC-001.pdf", doc.Filename)
	}
	if doc.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", doc.PageCount)
	}

	exists, err := storage.DocumentExists(ctx, "DOC-001.pdf")
	if err != nil || !exists {
		t.Errorf("DocumentExists = %v, %v, want true, nil", exists, err)
	}

	exists, err = storage.DocumentExists(ctx, "DOC-999.pdf")
	if err != nil || exists {
		t.Errorf("DocumentExists for missing file = %v, %v, want false, nil", exists, err)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())

	_, err := storage.GetDocument(context.Background(), 12345)
	if err != interfaces.ErrNotFound {
		t.Errorf("GetDocument(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListDocumentsOrdering(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	idA := saveTestDoc(t, storage, "a.pdf", []string{"text"})
	idB := saveTestDoc(t, storage, "b.pdf", []string{"text"})
	idC := saveTestDoc(t, storage, "c.pdf", []string{"text"})

	// a=50, b=80, c=50: expect b first, then a before c by filename
	if err := storage.UpdateClassification(ctx, idA, models.DocTypeLegal, 50); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateClassification(ctx, idB, models.DocTypeLawEnforcement, 80); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateClassification(ctx, idC, models.DocTypeLegal, 50); err != nil {
		t.Fatal(err)
	}

	docs, err := storage.ListDocuments(ctx, interfaces.ListOptions{MinScore: 0})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	want := []string{"b.pdf", "a.pdf", "c.pdf"}
	for i, doc := range docs {
		if doc.Filename != want[i] {
			t.Errorf("docs[%d] = %s, want %s", i, doc.Filename, want[i])
		}
	}

	// type filter
	legal, err := storage.ListDocuments(ctx, interfaces.ListOptions{DocType: models.DocTypeLegal})
	if err != nil {
		t.Fatalf("ListDocuments(type) failed: %v", err)
	}
	if len(legal) != 2 {
		t.Errorf("got %d legal documents, want 2", len(legal))
	}

	// score filter
	high, err := storage.ListDocuments(ctx, interfaces.ListOptions{MinScore: 60})
	if err != nil {
		t.Fatalf("ListDocuments(min_score) failed: %v", err)
	}
	if len(high) != 1 || high[0].Filename != "b.pdf" {
		t.Errorf("min_score filter returned %d docs, want just b.pdf", len(high))
	}
}

func TestHighlightsPreviewAndOrdering(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	idA := saveTestDoc(t, storage, "summarized.pdf", []string{"full text a"})
	idB := saveTestDoc(t, storage, "condensed-only.pdf", []string{"full text b"})
	idC := saveTestDoc(t, storage, "low-score.pdf", []string{"full text c"})

	if err := storage.UpdateClassification(ctx, idA, models.DocTypeEmail, 60); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateClassification(ctx, idB, models.DocTypeLegal, 70); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateClassification(ctx, idC, models.DocTypeOther, 10); err != nil {
		t.Fatal(err)
	}

	if err := storage.UpdateEnrichment(ctx, idA, "an ai summary", 90, "names a public figure"); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateCondensed(ctx, idB, "condensed body text", models.DocTypeLegal, 70); err != nil {
		t.Fatal(err)
	}

	highlights, err := storage.ListHighlights(ctx, 40)
	if err != nil {
		t.Fatalf("ListHighlights failed: %v", err)
	}
	if len(highlights) != 2 {
		t.Fatalf("got %d highlights, want 2", len(highlights))
	}

	// summarized doc ranks first on news score and previews the summary
	if highlights[0].Filename != "summarized.pdf" {
		t.Errorf("highlights[0] = %s, want summarized.pdf", highlights[0].Filename)
	}
	if highlights[0].Preview != "an ai summary" {
		t.Errorf("preview = %q, want the ai summary", highlights[0].Preview)
	}

	// unsummarized doc previews its condensed text
	if highlights[1].Preview != "condensed body text" {
		t.Errorf("preview = %q, want condensed text", highlights[1].Preview)
	}
}

func TestListUnsummarized(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	idA := saveTestDoc(t, storage, "a.pdf", []string{"text"})
	idB := saveTestDoc(t, storage, "b.pdf", []string{"text"})
	idC := saveTestDoc(t, storage, "c.pdf", []string{"text"})

	if err := storage.UpdateClassification(ctx, idA, models.DocTypeLegal, 50); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateClassification(ctx, idB, models.DocTypeLegal, 90); err != nil {
		t.Fatal(err)
	}
	if err := storage.UpdateClassification(ctx, idC, models.DocTypeOther, 10); err != nil {
		t.Fatal(err)
	}
	// already summarized, should be excluded
	if err := storage.UpdateEnrichment(ctx, idA, "done", 10, ""); err != nil {
		t.Fatal(err)
	}

	docs, err := storage.ListUnsummarized(ctx, 40)
	if err != nil {
		t.Fatalf("ListUnsummarized failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != idB {
		t.Errorf("got %d docs, want only b.pdf", len(docs))
	}
}

func TestListUnrankedAndUpdateRank(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	idA := saveTestDoc(t, storage, "a.pdf", []string{"text"})
	idB := saveTestDoc(t, storage, "b.pdf", []string{"text"})
	idC := saveTestDoc(t, storage, "c.pdf", []string{"text"})
	// d stays unsummarized and must not show up either
	saveTestDoc(t, storage, "d.pdf", []string{"text"})

	// a: summarized but rank parse failed (score 0)
	if err := storage.UpdateEnrichment(ctx, idA, "a real summary", 0, ""); err != nil {
		t.Fatal(err)
	}
	// b: summarized and ranked
	if err := storage.UpdateEnrichment(ctx, idB, "another summary", 70, "names a figure"); err != nil {
		t.Fatal(err)
	}
	// c: no-text marker, never worth ranking
	if err := storage.UpdateEnrichment(ctx, idC, models.NoExtractableText, 0, ""); err != nil {
		t.Fatal(err)
	}
	// d: not summarized yet

	docs, err := storage.ListUnranked(ctx)
	if err != nil {
		t.Fatalf("ListUnranked failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != idA {
		t.Fatalf("got %d unranked docs, want only a.pdf", len(docs))
	}

	if err := storage.UpdateRank(ctx, idA, 65, "recovered rank"); err != nil {
		t.Fatalf("UpdateRank failed: %v", err)
	}
	doc, err := storage.GetDocument(ctx, idA)
	if err != nil {
		t.Fatal(err)
	}
	if doc.NewsScore != 65 || doc.NewsReason != "recovered rank" {
		t.Errorf("rank = %d %q, want 65 recovered rank", doc.NewsScore, doc.NewsReason)
	}
	if doc.AISummary != "a real summary" {
		t.Errorf("summary = %q, must be untouched by UpdateRank", doc.AISummary)
	}

	remaining, err := storage.ListUnranked(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("got %d unranked docs after ranking, want 0", len(remaining))
	}
}

func TestCountByTypeAndStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storage := NewDocumentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	idA := saveTestDoc(t, storage, "a.pdf", []string{"p1", "p2"})
	idB := saveTestDoc(t, storage, "b.pdf", []string{"p1"})
	idC := saveTestDoc(t, storage, "c.pdf", []string{"p1"})

	for _, pair := range []struct {
		id      int64
		docType string
	}{
		{idA, models.DocTypeEmail},
		{idB, models.DocTypeEmail},
		{idC, models.DocTypeLegal},
	} {
		if err := storage.UpdateClassification(ctx, pair.id, pair.docType, 0); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := storage.CountByType(ctx)
	if err != nil {
		t.Fatalf("CountByType failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %d type groups, want 2", len(counts))
	}
	if counts[0].DocType != models.DocTypeEmail || counts[0].Count != 2 {
		t.Errorf("counts[0] = %+v, want email x2 first", counts[0])
	}

	stats, err := storage.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Documents != 3 || stats.Pages != 4 {
		t.Errorf("stats = %+v, want 3 documents, 4 pages", stats)
	}
}
