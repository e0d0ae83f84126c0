package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
)

func TestRebuildAndMatch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := arbor.NewLogger()
	docs := NewDocumentStorage(db, logger)
	index := NewSearchIndex(db, logger)
	ctx := context.Background()

	saveTestDoc(t, docs, "dep1.pdf", []string{
		"The witness appeared before the grand jury testimony session.",
		"Unrelated page about shipping schedules.",
	})
	saveTestDoc(t, docs, "dep2.pdf", []string{
		"Excerpt of grand jury testimony transcribed by the court reporter.",
	})
	saveTestDoc(t, docs, "dep3.pdf", []string{
		"Further grand jury testimony continued the following morning.",
	})

	indexed, err := index.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if indexed != 4 {
		t.Errorf("indexed %d pages, want 4", indexed)
	}

	hits, err := index.Match(ctx, `grand* AND jury* AND testimony*`, 100)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	for _, hit := range hits {
		if !strings.Contains(hit.Snippet, "<mark>") {
			t.Errorf("snippet %q missing match markers", hit.Snippet)
		}
	}
}

func TestScanFallbackOrdering(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := arbor.NewLogger()
	docs := NewDocumentStorage(db, logger)
	index := NewSearchIndex(db, logger)
	ctx := context.Background()

	// Insert out of relevance order; fallback must order by doc then page
	id1 := saveTestDoc(t, docs, "zz.pdf", []string{
		"padding page",
		"the phrase grand jury testimony appears here once",
	})
	id2 := saveTestDoc(t, docs, "aa.pdf", []string{
		"another grand jury testimony reference",
	})

	hits, err := index.Scan(ctx, "%grand%jury%testimony%", "grand", 100)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}

	// insertion order, not filename or relevance
	if hits[0].DocID != id1 || hits[0].PageNum != 2 {
		t.Errorf("hits[0] = doc %d page %d, want doc %d page 2", hits[0].DocID, hits[0].PageNum, id1)
	}
	if hits[1].DocID != id2 {
		t.Errorf("hits[1] = doc %d, want doc %d", hits[1].DocID, id2)
	}

	// snippet is a raw window around the first token
	if !strings.Contains(strings.ToLower(hits[0].Snippet), "grand") {
		t.Errorf("snippet %q does not contain the first token", hits[0].Snippet)
	}
}

func TestRebuildAfterPageUpdate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	logger := arbor.NewLogger()
	docs := NewDocumentStorage(db, logger)
	pages := NewPageStorage(db, logger)
	index := NewSearchIndex(db, logger)
	ctx := context.Background()

	docID := saveTestDoc(t, docs, "doc.pdf", []string{"original wording here"})

	docPages, err := pages.GetDocumentPages(ctx, docID)
	if err != nil || len(docPages) != 1 {
		t.Fatalf("GetDocumentPages = %v, %v", docPages, err)
	}
	if err := pages.UpdatePageText(ctx, docPages[0].ID, "replacement wording here"); err != nil {
		t.Fatalf("UpdatePageText failed: %v", err)
	}

	if _, err := index.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	hits, err := index.Match(ctx, "replacement*", 100)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits for updated text, want 1", len(hits))
	}

	stale, err := index.Match(ctx, "original*", 100)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("stale text still indexed after rebuild: %d hits", len(stale))
	}
}
