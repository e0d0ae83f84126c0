package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
)

// DocumentHandler serves the document listing and detail endpoints
type DocumentHandler struct {
	documents interfaces.DocumentStorage
	pages     interfaces.PageStorage
	logger    arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents interfaces.DocumentStorage, pages interfaces.PageStorage, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		pages:     pages,
		logger:    logger,
	}
}

// StatsHandler handles GET /api/stats
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := h.documents.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load stats")
		WriteError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// ListHandler handles GET /api/documents?type=&min_score=
func (h *DocumentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	opts := interfaces.ListOptions{
		DocType: r.URL.Query().Get("type"),
	}
	if minStr := r.URL.Query().Get("min_score"); minStr != "" {
		minScore, err := strconv.Atoi(minStr)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "min_score must be an integer")
			return
		}
		opts.MinScore = minScore
	}

	docs, err := h.documents.ListDocuments(r.Context(), opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list documents")
		WriteError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// TypesHandler handles GET /api/doc_types
func (h *DocumentHandler) TypesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	counts, err := h.documents.CountByType(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count document types")
		WriteError(w, http.StatusInternalServerError, "failed to count document types")
		return
	}
	WriteJSON(w, http.StatusOK, counts)
}

// HighlightsHandler handles GET /api/highlights
func (h *DocumentHandler) HighlightsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	highlights, err := h.documents.ListHighlights(r.Context(), 40)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list highlights")
		WriteError(w, http.StatusInternalServerError, "failed to list highlights")
		return
	}
	WriteJSON(w, http.StatusOK, highlights)
}

// GetHandler handles GET /api/document/{id}, returning the document and
// its pages in page order.
func (h *DocumentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, ok := h.parseID(w, r, "/api/document/")
	if !ok {
		return
	}

	doc, err := h.documents.GetDocument(r.Context(), id)
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Int64("id", id).Msg("Failed to load document")
		WriteError(w, http.StatusInternalServerError, "failed to load document")
		return
	}

	pages, err := h.pages.GetDocumentPages(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("id", id).Msg("Failed to load pages")
		WriteError(w, http.StatusInternalServerError, "failed to load pages")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"doc":   doc,
		"pages": pages,
	})
}

// ServePDFHandler handles GET /api/pdf/{id}, serving the stored source file
func (h *DocumentHandler) ServePDFHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, ok := h.parseID(w, r, "/api/pdf/")
	if !ok {
		return
	}

	doc, err := h.documents.GetDocument(r.Context(), id)
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Int64("id", id).Msg("Failed to load document")
		WriteError(w, http.StatusInternalServerError, "failed to load document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, doc.Filepath)
}

func (h *DocumentHandler) parseID(w http.ResponseWriter, r *http.Request, prefix string) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid document id")
		return 0, false
	}
	return id, true
}
