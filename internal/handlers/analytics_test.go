package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"referral-platform/internal/middleware"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

type stubAnalyticsStore struct {
	disputeScope store.Scope
	pending      int
}

func (s *stubAnalyticsStore) GetLeads(scope store.Scope) ([]models.Lead, error) {
	return []models.Lead{}, nil
}

func (s *stubAnalyticsStore) GetCampaigns(scope store.Scope) ([]models.Campaign, error) {
	return []models.Campaign{}, nil
}

func (s *stubAnalyticsStore) GetEarnings(scope store.Scope) ([]models.Earning, error) {
	return []models.Earning{}, nil
}

func (s *stubAnalyticsStore) PendingDisputeCount(scope store.Scope) (int, error) {
	s.disputeScope = scope
	return s.pending, nil
}

func analyticsRouter(s *stubAnalyticsStore, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AnalyticsHandler{Store: s}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, role)
		c.Next()
	})
	r.GET("/analytics/overview", h.Overview)
	return r
}

// The dispute count must carry the caller's scope like every other overview
// input; a referrer only sees their own open cases.
func TestOverviewScopesDisputeCount(t *testing.T) {
	s := &stubAnalyticsStore{pending: 2}
	r := analyticsRouter(s, "r-1", "referrer")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analytics/overview", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, store.Scope{Referrer: "r-1"}, s.disputeScope)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["pendingDisputes"])
}

func TestOverviewAdminSeesPlatformDisputeCount(t *testing.T) {
	s := &stubAnalyticsStore{pending: 5}
	r := analyticsRouter(s, "a-1", "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analytics/overview", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, store.Scope{All: true}, s.disputeScope)
}
