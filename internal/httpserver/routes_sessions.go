// internal/httpserver/routes_sessions.go
//
// Session views:
//   - GET /sessions         → live sessions from the registry
//   - GET /sessions/{id}    → one live session
//   - GET /results?limit=n  → most recent journaled sessions (default 20, max 200)

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/history"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/session"
)

const maxResultsLimit = 200

// mountSessions registers the session and result routes.
func (s *Server) mountSessions(r chi.Router) {
	r.Get("/sessions", s.handleSessions)
	r.Get("/sessions/{id}", s.handleSession)
	r.Get("/results", s.handleResults)
}

type sessionsRes struct {
	Count    int             `json:"count"`
	Sessions []session.Entry `json:"sessions"`
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.Snapshot()
	_ = json.NewEncoder(w).Encode(sessionsRes{Count: len(entries), Sessions: entries})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	e, err := s.registry.Get(chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(e)
}

type resultsRes struct {
	Results []history.Result `json:"results"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusNotFound, "journal_disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxResultsLimit)
	}
	rows, err := s.results.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list results")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(resultsRes{Results: rows})
}
