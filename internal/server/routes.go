package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - corpus
	mux.HandleFunc("/api/stats", s.app.DocumentHandler.StatsHandler)
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.ListHandler)
	mux.HandleFunc("/api/doc_types", s.app.DocumentHandler.TypesHandler)
	mux.HandleFunc("/api/highlights", s.app.DocumentHandler.HighlightsHandler)
	mux.HandleFunc("/api/document/", s.app.DocumentHandler.GetHandler) // GET /{id}
	mux.HandleFunc("/api/pdf/", s.app.DocumentHandler.ServePDFHandler) // GET /{id}

	// API routes - search and enrichment
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler)
	mux.HandleFunc("/api/summarize", s.app.SummarizeHandler.SummarizeHandler)

	// Static files (web UI)
	if s.app.Config.Server.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.app.Config.Server.StaticDir)))
	}

	return mux
}
