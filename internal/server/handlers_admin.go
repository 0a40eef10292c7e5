package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/matching"
	"github.com/jonathan/plumber-matcher/internal/schemas"
	"github.com/jonathan/plumber-matcher/internal/types"
)

// maxImportBytes bounds catalog snapshot uploads.
const maxImportBytes = 1 << 20

// handleCreateAttribute registers a new attribute definition.
func (s *Server) handleCreateAttribute(w http.ResponseWriter, r *http.Request) {
	var req types.AttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	def := req.ToDefinition()

	s.mu.Lock()
	defer s.mu.Unlock()

	registry := s.engine.Registry()
	if _, exists := registry.Get(def.Name); exists {
		conflict := &ErrConflict{Message: "attribute already exists: " + def.Name}
		s.errorResponse(w, HTTPStatus(conflict), conflict.Error())
		return
	}
	if err := registry.Add(def); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, def)
}

// handleUpdateAttribute replaces an existing attribute definition.
func (s *Server) handleUpdateAttribute(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req types.AttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	def := req.ToDefinition()

	s.mu.Lock()
	err := s.engine.Registry().Update(name, def)
	s.mu.Unlock()
	if err != nil {
		var notFound *catalog.NotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, def)
}

// handleDeleteAttribute removes an attribute definition. Core attributes
// are protected and cannot be removed.
func (s *Server) handleDeleteAttribute(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.Lock()
	err := s.engine.Registry().Remove(name)
	s.mu.Unlock()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "attribute removed: " + name})
}

// handleAttributeStats summarizes the catalog for the admin dashboard.
func (s *Server) handleAttributeStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	stats := s.engine.Registry().Stats()
	s.mu.RUnlock()

	s.jsonResponse(w, http.StatusOK, stats)
}

// handleTestAttribute dry-runs one attribute against a sample value: it
// validates the value against the definition, then runs a single-preference
// match and summarizes the outcome.
func (s *Server) handleTestAttribute(w http.ResponseWriter, r *http.Request) {
	var req types.AttributeTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	registry := s.engine.Registry()
	def, ok := registry.Get(req.Name)
	if !ok {
		err := &catalog.NotFoundError{Name: req.Name}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	preferences := map[string]any{req.Name: req.Value}
	results, err := s.engine.Match(preferences, matching.DefaultMaxResults)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"attribute":     def,
		"value_valid":   registry.Validate(req.Name, req.Value),
		"total_matches": len(results),
		"report":        matching.GenerateReport(registry, preferences, results),
	})
}

// handleExportCatalog serves the current catalog as a JSON snapshot.
func (s *Server) handleExportCatalog(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	data, err := s.engine.Registry().Export()
	s.mu.RUnlock()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImportCatalog replaces the catalog from a JSON snapshot. The
// snapshot is checked against the catalog schema before the registry
// parses it, so malformed uploads never touch the live catalog.
func (s *Server) handleImportCatalog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	schemaContent, err := os.ReadFile(s.schemaPath)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "catalog schema unavailable: "+s.schemaPath)
		return
	}
	if err := schemas.ValidateJSONString(string(schemaContent), string(body)); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	err = s.engine.Registry().Import(body)
	total := s.engine.Registry().Len()
	s.mu.Unlock()
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":          "catalog imported",
		"total_attributes": total,
	})
}

// handleOverview returns platform-wide analytics.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.db.GetOverview(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, overview)
}
