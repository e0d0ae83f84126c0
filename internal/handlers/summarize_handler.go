package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
)

// Summarizer produces an ad hoc summary of document text in the context
// of a search query.
type Summarizer interface {
	AdhocSummarize(ctx context.Context, text, query string) (string, error)
}

// SummarizeHandler serves the interactive summarize endpoint
type SummarizeHandler struct {
	summarizer Summarizer
	logger     arbor.ILogger
}

// NewSummarizeHandler creates a new summarize handler. A nil summarizer
// is allowed when no LLM provider is configured.
func NewSummarizeHandler(summarizer Summarizer, logger arbor.ILogger) *SummarizeHandler {
	return &SummarizeHandler{
		summarizer: summarizer,
		logger:     logger,
	}
}

type summarizeRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

// SummarizeHandler handles POST /api/summarize
func (h *SummarizeHandler) SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if h.summarizer == nil {
		WriteError(w, http.StatusInternalServerError, "no LLM provider configured")
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.summarizer.AdhocSummarize(r.Context(), req.Text, req.Query)
	if err != nil {
		h.logger.Error().Err(err).Msg("Ad hoc summarization failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
