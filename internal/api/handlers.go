package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/wesm/chatvault/internal/export"
	"github.com/wesm/chatvault/internal/search"
)

// SearchResult is the JSON shape of one search hit.
type SearchResult struct {
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	Role           string `json:"role"`
	CreatedAt      string `json:"created_at"` // ISO UTC, empty when unknown
	Text           string `json:"text"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch runs a search. Query parameters: q (translated search
// query), since/until (YYYY-MM-DD, inclusive), limit.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := &search.Query{
		Match: search.Translate(params.Get("q")),
	}

	var err error
	if q.Since, err = search.ParseDate(params.Get("since")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if q.Until, err = search.ParseDate(params.Get("until")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := s.cfg.Search.DefaultLimit
	if v := params.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	results, err := s.engine.Search(r.Context(), q, limit)
	if err != nil {
		// Malformed FTS5 syntax surfaces here; the engine's message is
		// passed through rather than reclassified.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := make([]SearchResult, len(results))
	for i, res := range results {
		out[i] = SearchResult{
			MessageID:      res.MessageID,
			ConversationID: res.ConversationID,
			Title:          res.Title,
			Role:           res.Role,
			CreatedAt:      export.FormatTimestamp(res.CreatedAt),
			Text:           res.Text,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": out,
		"count":   len(out),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"conversations": stats.ConversationCount,
		"messages":      stats.MessageCount,
		"indexed":       stats.IndexedCount,
		"database_size": stats.DatabaseSize,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
