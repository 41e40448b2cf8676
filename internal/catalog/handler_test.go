package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(loadDefault(t)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestHandlerCategories(t *testing.T) {
	r := newTestRouter(t)
	resp := doGet(r, "/api/v1/catalog/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Categories []CategorySummary `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 8)
}

func TestHandlerTools(t *testing.T) {
	r := newTestRouter(t)

	resp := doGet(r, "/api/v1/catalog/categories/Backend%20Frameworks/tools?q=django")
	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Tools []Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Tools, 1)
	assert.Equal(t, "Django", body.Tools[0].Name)

	resp = doGet(r, "/api/v1/catalog/categories/Unknown/tools")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandlerCompare(t *testing.T) {
	r := newTestRouter(t)

	resp := doGet(r, "/api/v1/catalog/compare?category=Frontend%20Frameworks&tools=Angular,React")
	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Metrics []string `json:"metrics"`
		Tools   []Tool   `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"popularity", "learning", "community", "performance"}, body.Metrics)
	require.Len(t, body.Tools, 2)
	assert.Equal(t, "Angular", body.Tools[0].Name)

	assert.Equal(t, http.StatusBadRequest, doGet(r, "/api/v1/catalog/compare").Code)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/api/v1/catalog/compare?category=Databases&tools=Oracle").Code)
}

func TestHandlerTrends(t *testing.T) {
	r := newTestRouter(t)

	resp := doGet(r, "/api/v1/trends?limit=5")
	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Trending []TrendingTool `json:"trending"`
		Rising   []TrendingTool `json:"rising"`
		Share    []Share        `json:"share"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Trending, 5)
	assert.NotEmpty(t, body.Rising)
	assert.Len(t, body.Share, 4)

	assert.Equal(t, http.StatusBadRequest, doGet(r, "/api/v1/trends?limit=x").Code)

	resp = doGet(r, "/api/v1/trends/backend")
	require.Equal(t, http.StatusOK, resp.Code)
	var series Series
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &series))
	assert.Equal(t, "backend", series.Area)
	assert.Equal(t, 79, series.Points[11].Values["Node"])
}
