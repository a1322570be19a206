package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "dashformance/leads-api/docs"
	"dashformance/leads-api/internal/api/middleware"
	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServices satisfies every controller dependency and records the last call
type stubServices struct {
	called string
}

func (s *stubServices) Search(context.Context, dto.SearchParams, int) (*dto.SearchPage, error) {
	s.called = "Search"
	return &dto.SearchPage{Results: []dto.Company{}}, nil
}

func (s *stubServices) ExtractAndSave(context.Context, dto.SearchParams, int, bool) (*dto.ExtractionResult, error) {
	s.called = "ExtractAndSave"
	return &dto.ExtractionResult{Candidates: []dto.LeadInput{}}, nil
}

func (s *stubServices) Create(context.Context, dto.LeadInput) (*dto.Lead, error) {
	s.called = "Create"
	return &dto.Lead{}, nil
}

func (s *stubServices) CreateMany(context.Context, []dto.LeadInput) (int, error) {
	s.called = "CreateMany"
	return 0, nil
}

func (s *stubServices) FindAll(context.Context, int, int) (*dto.LeadListResponse, error) {
	s.called = "FindAll"
	return &dto.LeadListResponse{Data: []dto.Lead{}}, nil
}

func (s *stubServices) FindOne(_ context.Context, id string) (*dto.Lead, error) {
	s.called = "FindOne:" + id
	return &dto.Lead{ID: id}, nil
}

func (s *stubServices) FindAllTrashed(context.Context) ([]dto.Lead, error) {
	s.called = "FindAllTrashed"
	return []dto.Lead{}, nil
}

func (s *stubServices) Update(_ context.Context, id string, _ map[string]interface{}) (*dto.Lead, error) {
	s.called = "Update:" + id
	return &dto.Lead{ID: id}, nil
}

func (s *stubServices) UpdateMany(context.Context, []string, map[string]interface{}) (int, error) {
	s.called = "UpdateMany"
	return 0, nil
}

func (s *stubServices) Disqualify(_ context.Context, id string) (*dto.Lead, error) {
	s.called = "Disqualify:" + id
	return &dto.Lead{ID: id}, nil
}

func (s *stubServices) Remove(_ context.Context, id string) (*dto.Lead, error) {
	s.called = "Remove:" + id
	return &dto.Lead{ID: id}, nil
}

func (s *stubServices) Restore(_ context.Context, id string) (*dto.Lead, error) {
	s.called = "Restore:" + id
	return &dto.Lead{ID: id}, nil
}

func (s *stubServices) RemoveMany(context.Context, []string) (int, error) {
	s.called = "RemoveMany"
	return 0, nil
}

func (s *stubServices) RestoreMany(context.Context, []string) (int, error) {
	s.called = "RestoreMany"
	return 0, nil
}

func (s *stubServices) HardDelete(_ context.Context, id string) error {
	s.called = "HardDelete:" + id
	return nil
}

func (s *stubServices) CleanupDuplicates(context.Context) (*dto.CleanupResult, error) {
	s.called = "CleanupDuplicates"
	return &dto.CleanupResult{IDs: []string{}}, nil
}

func (s *stubServices) DivideLeads(context.Context, int, string) (*dto.DivideResult, error) {
	s.called = "DivideLeads"
	return &dto.DivideResult{}, nil
}

func (s *stubServices) Overview(context.Context) (*dto.StatsOverview, error) {
	s.called = "Overview"
	return &dto.StatsOverview{}, nil
}

func (s *stubServices) Funnel(context.Context) ([]dto.FunnelStage, error) {
	s.called = "Funnel"
	return []dto.FunnelStage{}, nil
}

func (s *stubServices) Timeline(context.Context, int) ([]dto.TimelinePoint, error) {
	s.called = "Timeline"
	return []dto.TimelinePoint{}, nil
}

func (s *stubServices) Performance(context.Context) (map[string]dto.OwnerPerformance, error) {
	s.called = "Performance"
	return map[string]dto.OwnerPerformance{}, nil
}

func (s *stubServices) Geo(context.Context) (*dto.GeoStats, error) {
	s.called = "Geo"
	return &dto.GeoStats{}, nil
}

func (s *stubServices) SalesForce(context.Context) (map[string]dto.SalesForceStats, error) {
	s.called = "SalesForce"
	return map[string]dto.SalesForceStats{}, nil
}

func newTestRouter(password string, limiter *middleware.RateLimiter) (*gin.Engine, *stubServices) {
	gin.SetMode(gin.TestMode)
	stub := &stubServices{}
	router := NewRouter(Dependencies{
		Extractor:   stub,
		Leads:       stub,
		Stats:       stub,
		RateLimiter: limiter,
		Logger:      logger.Discard(),
		AppPassword: password,
	})
	return router, stub
}

func serve(router *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.RequestURI = path
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHealthCheck tests the /health endpoint
func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter("s3cret", nil)

	w := serve(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

// TestHealthCheck_DifferentMethods tests health endpoint with different HTTP methods
func TestHealthCheck_DifferentMethods(t *testing.T) {
	router, _ := newTestRouter("", nil)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := serve(router, method, "/health", "", nil)
			assert.True(t, w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed,
				"Expected 404 or 405 for method %s, got %d", method, w.Code)
		})
	}
}

// TestSwaggerRoute tests that the Swagger UI is served without authentication
func TestSwaggerRoute(t *testing.T) {
	router, _ := newTestRouter("s3cret", nil)

	w := serve(router, http.MethodGet, "/swagger/doc.json", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/extraction/extract")
}

func TestMetricsRoute(t *testing.T) {
	router, _ := newTestRouter("s3cret", nil)

	serve(router, http.MethodGet, "/health", "", nil)
	w := serve(router, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

// TestNotFoundRoute tests that non-existent routes return 404
func TestNotFoundRoute(t *testing.T) {
	router, _ := newTestRouter("", nil)

	for _, route := range []string{"/nonexistent", "/api/v1/search", "/leads/stats/unknown", "/extraction"} {
		t.Run(route, func(t *testing.T) {
			w := serve(router, http.MethodGet, route, "", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	router, stub := newTestRouter("s3cret", nil)

	t.Run("no credentials", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/leads", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, stub.called)
	})

	t.Run("bearer token", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/leads", "", http.Header{"Authorization": {"Bearer s3cret"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "FindAll", stub.called)
	})

	t.Run("login cookie", func(t *testing.T) {
		login := serve(router, http.MethodPost, "/auth/login", `{"password": "s3cret"}`, nil)
		require.Equal(t, http.StatusOK, login.Code)
		cookie := login.Result().Cookies()[0]

		w := serve(router, http.MethodPost, "/extraction/preview", `{}`, http.Header{"Cookie": {cookie.Name + "=" + cookie.Value}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ExtractAndSave", stub.called)
	})
}

func TestLeadRoutes_StaticBeforeID(t *testing.T) {
	router, stub := newTestRouter("", nil)

	tests := []struct {
		method string
		path   string
		called string
	}{
		{http.MethodGet, "/leads/trashed", "FindAllTrashed"},
		{http.MethodGet, "/leads/stats/overview", "Overview"},
		{http.MethodGet, "/leads/stats/salesforce", "SalesForce"},
		{http.MethodGet, "/leads/abc", "FindOne:abc"},
		{http.MethodPatch, "/leads/abc", "Update:abc"},
		{http.MethodDelete, "/leads/abc", "Remove:abc"},
		{http.MethodPost, "/leads/abc/restore", "Restore:abc"},
		{http.MethodPost, "/leads/abc/disqualify", "Disqualify:abc"},
		{http.MethodDelete, "/leads/abc/hard-delete", "HardDelete:abc"},
		{http.MethodPost, "/leads/cleanup-duplicates", "CleanupDuplicates"},
		{http.MethodPost, "/leads/batch/delete", "RemoveMany"},
		{http.MethodPost, "/leads/divide", "DivideLeads"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			body := `{}`
			switch tt.path {
			case "/leads/batch/delete":
				body = `{"ids": ["a"]}`
			case "/leads/divide":
				body = `{"primaryCount": 1}`
			}

			w := serve(router, tt.method, tt.path, body, nil)

			assert.Less(t, w.Code, 300)
			assert.Equal(t, tt.called, stub.called)
		})
	}
}

func TestLoginRoute_RateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 1)
	defer limiter.Stop()
	router, _ := newTestRouter("s3cret", limiter)

	first := serve(router, http.MethodPost, "/auth/login", `{"password": "wrong"}`, nil)
	second := serve(router, http.MethodPost, "/auth/login", `{"password": "wrong"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "", nil).Code)
}
