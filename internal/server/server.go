package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kyohei682474/1day1growth/internal/store"
)

// Server is the growth HTTP API server.
type Server struct {
	db       *store.DB
	router   chi.Router
	pageSize int
	version  string
	started  time.Time
}

// New creates a new Server with the given database, default page size,
// and version string.
func New(db *store.DB, pageSize int, version string) *Server {
	if pageSize < 1 {
		pageSize = store.DefaultPageSize
	}
	s := &Server{
		db:       db,
		pageSize: pageSize,
		version:  version,
		started:  time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/entries", s.handleCreateEntry)
		r.Get("/entries", s.handleListEntries)
		r.Get("/entries/search", s.handleSearchEntries)
		r.Get("/entries/{entryID}", s.handleGetEntry)
		r.Get("/streak", s.handleStreak)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}
	count, _ := s.db.CountEntries()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
		"entries": count,
	})
}
