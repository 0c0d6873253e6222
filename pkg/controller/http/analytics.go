package http

import (
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.uc.Analytics.Dashboard(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, stats)
}

func (s *Server) handleUntakenOverdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := s.uc.Analytics.UntakenOverdue(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, overdue)
}

func (s *Server) handleBusiestQueues(w http.ResponseWriter, r *http.Request) {
	queues, err := s.uc.Analytics.BusiestQueues(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, queues)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	hits, err := s.uc.Search.Search(r.Context(), term)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, hits)
}
