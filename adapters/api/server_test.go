package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartadvisor/adapters/localstore"
	"chartadvisor/internal/profile"
	"chartadvisor/internal/recommend"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := localstore.New(localstore.NewFileBlobStore(t.TempDir()))
	return NewServer(profile.NewExtractor(profile.DefaultConfig()), recommend.NewEngine(), store)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/analyze", gin.H{
		"rows": []gin.H{
			{"category": "A", "value": 100},
			{"category": "B", "value": 200},
			{"category": "C", "value": 150},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyzeResponse
	decode(t, w, &resp)
	assert.Equal(t, 3, resp.TotalRows)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "category", resp.Fields[0].Name)
	assert.Equal(t, "value", resp.Fields[1].Name)
	require.NotNil(t, resp.Fields[1].NumericStats)
	assert.InDelta(t, 150.0, resp.Fields[1].NumericStats.Mean, 1e-9)
}

func TestAnalyzeEmptyRows(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/analyze", gin.H{"rows": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/recommend", gin.H{
		"rows": []gin.H{
			{"category": "A", "value": 100},
			{"category": "B", "value": 200},
			{"category": "C", "value": 150},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp recommendResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "bar", string(resp.Recommendations[0].ChartType))
	assert.Equal(t, 85, resp.Recommendations[0].Confidence)
	assert.LessOrEqual(t, len(resp.Recommendations), recommend.DefaultMaxResults)
}

func TestRecommendRequiresInput(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/recommend", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/generate", gin.H{
		"chart_type": "bar",
		"title":      "Sales",
		"mapping":    gin.H{"dimension": "category", "measures": []string{"value"}},
		"rows": []gin.H{
			{"category": "A", "value": 100},
			{"category": "B", "value": 200},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp generateResponse
	decode(t, w, &resp)
	var spec map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Option), &spec))
	assert.Contains(t, spec, "series")
	assert.Contains(t, spec, "xAxis")
}

func TestGenerateRejectsUnknownMeasure(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/generate", gin.H{
		"chart_type": "bar",
		"mapping":    gin.H{"dimension": "category", "measures": []string{"missing"}},
		"rows":       []gin.H{{"category": "A", "value": 100}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleChangeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/mapping/roles", gin.H{
		"mapping": gin.H{"measures": []string{}},
		"fields": []gin.H{
			{"name": "region", "data_type": "string"},
		},
		"role":  "dimension",
		"field": "region",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Mapping struct {
			Dimension string `json:"dimension"`
		} `json:"mapping"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "region", resp.Mapping.Dimension)
}

func TestRoleChangeUnknownRole(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/mapping/roles", gin.H{
		"mapping": gin.H{"measures": []string{}},
		"fields":  []gin.H{{"name": "region", "data_type": "string"}},
		"role":    "flavor",
		"field":   "region",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChartCRUD(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/charts", gin.H{
		"name":           "Revenue by Region",
		"chart_type":     "bar",
		"data_source_id": "ds-1",
		"field_mapping":  gin.H{"dimension": "region", "measures": []string{"revenue"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = doJSON(t, s, http.MethodGet, "/api/charts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, w, &list)
	assert.Equal(t, 1, list.Count)

	w = doJSON(t, s, http.MethodGet, "/api/charts/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPut, "/api/charts/"+created.ID, gin.H{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Name string `json:"name"`
	}
	decode(t, w, &updated)
	assert.Equal(t, "Renamed", updated.Name)

	w = doJSON(t, s, http.MethodDelete, "/api/charts/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/charts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartFilterByDataSource(t *testing.T) {
	s := newTestServer(t)

	for _, src := range []string{"ds-1", "ds-1", "ds-2"} {
		w := doJSON(t, s, http.MethodPost, "/api/charts", gin.H{
			"name":           "chart",
			"chart_type":     "line",
			"data_source_id": src,
			"field_mapping":  gin.H{"measures": []string{}},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, s, http.MethodGet, "/api/charts?data_source_id=ds-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, w, &list)
	assert.Equal(t, 2, list.Count)
}

func TestClearCharts(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/charts", gin.H{
		"name":          "chart",
		"chart_type":    "pie",
		"field_mapping": gin.H{"measures": []string{}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/charts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/charts", nil)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, w, &list)
	assert.Equal(t, 0, list.Count)
}

func TestReportEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/report", gin.H{
		"title": "Quarterly",
		"rows": []gin.H{
			{"category": "A", "value": 100},
			{"category": "B", "value": 200},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Quarterly")
}
