package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/interfaces"
)

// SearchHandler serves the search endpoint
type SearchHandler struct {
	search interfaces.SearchService
	logger arbor.ILogger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search interfaces.SearchService, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		search: search,
		logger: logger,
	}
}

// SearchHandler handles GET /api/search?q=
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	hits, err := h.search.Search(r.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Search failed")
		WriteError(w, http.StatusInternalServerError, "search failed")
		return
	}
	WriteJSON(w, http.StatusOK, hits)
}
