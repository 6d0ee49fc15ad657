package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kyohei682474/1day1growth/internal/store"
	"github.com/kyohei682474/1day1growth/internal/timeline"
)

type entryJSON struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Effort    int      `json:"effort"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"`
}

func toEntryJSON(e store.Entry) entryJSON {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return entryJSON{
		ID:        e.ID,
		Text:      e.Text,
		Effort:    e.Effort,
		Tags:      tags,
		CreatedAt: e.CreatedAt,
	}
}

func toEntryList(entries []store.Entry) []entryJSON {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = toEntryJSON(e)
	}
	return out
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string   `json:"text"`
		Effort *int     `json:"effort"`
		Tags   []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Effort == nil {
		http.Error(w, `{"error":"invalid effort: is required"}`, http.StatusBadRequest)
		return
	}

	entry, err := s.db.CreateEntry(req.Text, *req.Effort, req.Tags)
	if err != nil {
		if store.IsValidation(err) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toEntryJSON(*entry))
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")

	limit := s.pageSize
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, next, err := s.db.ListEntries(cursor, limit)
	if err != nil {
		if errors.Is(err, store.ErrCursorNotFound) {
			http.Error(w, `{"error":"cursor not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"entries":     toEntryList(entries),
		"next_cursor": next,
		"count":       len(entries),
	})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entryID")

	entry, err := s.db.GetEntry(id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if entry == nil {
		http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toEntryJSON(*entry))
}

func (s *Server) handleSearchEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, `{"error":"q parameter required"}`, http.StatusBadRequest)
		return
	}

	limit := s.pageSize
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.db.SearchEntries(query, limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":   query,
		"count":   len(entries),
		"entries": toEntryList(entries),
	})
}

// handleStreak walks pages of history until the streak breaks, so the
// reported value is the true full-history streak, not one page's worth.
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := timeline.CurrentStreak(s.db, s.pageSize, time.Now())
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"streak": streak,
	})
}
