package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/matching"
	"github.com/jonathan/plumber-matcher/internal/types"
)

// handleMatch ranks the loaded plumber table against the customer's
// preferences.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = s.maxResults
	}

	s.mu.RLock()
	results, err := s.engine.Match(req.Preferences, maxResults)
	s.mu.RUnlock()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"matches": results,
		"total":   len(results),
	})
}

// handleMatchReport runs a match and returns the summary report alongside
// the ranked results.
func (s *Server) handleMatchReport(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = s.maxResults
	}

	s.mu.RLock()
	results, err := s.engine.Match(req.Preferences, maxResults)
	if err != nil {
		s.mu.RUnlock()
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	report := matching.GenerateReport(s.engine.Registry(), req.Preferences, results)
	s.mu.RUnlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"report":  report,
		"matches": results,
	})
}

// handleOptions lists the distinct preference choices present in the
// loaded plumber table.
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	table := s.engine.Table()
	if table == nil {
		s.errorResponse(w, HTTPStatus(matching.ErrNotLoaded), matching.ErrNotLoaded.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.OptionsResponse{
		Districts: table.Districts(),
		WorkTypes: table.WorkTypes(),
		TimeSlots: table.TimeSlots(),
		Languages: table.Languages(),
	})
}

// handleListAttributes lists the attribute catalog, optionally filtered
// by category.
func (s *Server) handleListAttributes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	registry := s.engine.Registry()
	if category := r.URL.Query().Get("category"); category != "" {
		byCategory := registry.GetByCategory(catalog.Category(category))
		defs := make([]catalog.Definition, 0, len(byCategory))
		for _, name := range registry.Names() {
			if def, ok := byCategory[name]; ok {
				defs = append(defs, def)
			}
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"attributes": defs, "total": len(defs)})
		return
	}

	defs := registry.List()
	s.jsonResponse(w, http.StatusOK, map[string]any{"attributes": defs, "total": len(defs)})
}

// handleGetAttribute returns one attribute definition by name.
func (s *Server) handleGetAttribute(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.RLock()
	def, ok := s.engine.Registry().Get(name)
	s.mu.RUnlock()
	if !ok {
		err := &catalog.NotFoundError{Name: name}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, def)
}
