package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/dataset"
	"github.com/jonathan/plumber-matcher/internal/matching"
)

func f64(v float64) *float64 { return &v }

// newMatchServer builds a server over an in-memory plumber table, without
// a database.
func newMatchServer(t *testing.T) *Server {
	t.Helper()
	engine := matching.NewEngine(catalog.NewRegistry())
	engine.LoadTable(dataset.FromRecords([]dataset.Record{
		{
			Name:               "Ramesh Patel",
			District:           "Ahmedabad",
			WorkSpecialization: "Leak Repair",
			LanguagesSpoken:    "Gujarati, Hindi",
			FreeTimeSlots:      "9-11 AM, 2-4 PM",
			ExperienceYears:    f64(8),
			Rating:             f64(4.5),
			Latitude:           f64(23.0225),
			Longitude:          f64(72.5714),
		},
		{
			Name:               "Suresh Shah",
			District:           "Surat",
			WorkSpecialization: "Leak Repair",
			LanguagesSpoken:    "Hindi",
			ExperienceYears:    f64(5),
			Rating:             f64(4.0),
			Latitude:           f64(21.17),
			Longitude:          f64(72.83),
		},
	}))
	return &Server{engine: engine}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHandleMatch(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodPost, "/match", map[string]any{
		"preferences": map[string]any{"work_type": "Leak Repair", "district": "Ahmedabad"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Matches []matching.Result `json:"matches"`
		Total   int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "Ramesh Patel", resp.Matches[0].Provider.Name)
	assert.Greater(t, resp.Matches[0].MatchScore, resp.Matches[1].MatchScore)
}

func TestHandleMatch_NoTable(t *testing.T) {
	s := &Server{engine: matching.NewEngine(catalog.NewRegistry())}

	w := doJSON(t, s, http.MethodPost, "/match", map[string]any{
		"preferences": map[string]any{"work_type": "Leak Repair"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleMatch_InvalidBody(t *testing.T) {
	s := newMatchServer(t)

	req := httptest.NewRequest(http.MethodPost, "/match", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMatch_MissingPreferences(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodPost, "/match", map[string]any{"max_results": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMatchReport(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodPost, "/match/report", map[string]any{
		"preferences": map[string]any{"work_type": "Leak Repair"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Report  matching.Report   `json:"report"`
		Matches []matching.Result `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Report.TotalFound)
	assert.Equal(t, []string{"work_type"}, resp.Report.PreferencesUsed)
	assert.Len(t, resp.Matches, 2)
}

func TestHandleOptions(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodGet, "/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Districts []string `json:"districts"`
		WorkTypes []string `json:"work_types"`
		Languages []string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Ahmedabad", "Surat"}, resp.Districts)
	assert.Equal(t, []string{"Leak Repair"}, resp.WorkTypes)
	assert.Contains(t, resp.Languages, "Gujarati")
}

func TestHandleOptions_NoTable(t *testing.T) {
	s := &Server{engine: matching.NewEngine(catalog.NewRegistry())}

	w := doJSON(t, s, http.MethodGet, "/options", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleListAttributes(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodGet, "/attributes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Attributes []catalog.Definition `json:"attributes"`
		Total      int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 18, resp.Total)
}

func TestHandleListAttributes_ByCategory(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodGet, "/attributes?category=financial", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Attributes []catalog.Definition `json:"attributes"`
		Total      int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Attributes)
	for _, def := range resp.Attributes {
		assert.Equal(t, catalog.CategoryFinancial, def.Category)
	}
}

func TestHandleGetAttribute(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodGet, "/attributes/work_type", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var def catalog.Definition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &def))
	assert.Equal(t, "work_type", def.Name)
	assert.Equal(t, catalog.KindCategorical, def.Kind)
}

func TestHandleGetAttribute_NotFound(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodGet, "/attributes/shoe_size", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newMatchServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["dataset_loaded"])
	assert.Equal(t, false, resp["database"])
}

func TestDatabaseEndpoints_WithoutDatabase(t *testing.T) {
	s := newMatchServer(t)

	paths := []struct{ method, path string }{
		{http.MethodPost, "/auth/register"},
		{http.MethodPost, "/auth/login"},
		{http.MethodPost, "/plumbers/available"},
		{http.MethodPost, "/bookings"},
		{http.MethodGet, "/bookings"},
		{http.MethodPost, "/reviews"},
		{http.MethodGet, "/admin/attributes"},
		{http.MethodGet, "/admin/overview"},
	}
	for _, p := range paths {
		w := doJSON(t, s, p.method, p.path, map[string]any{})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", p.method, p.path)
	}
}
