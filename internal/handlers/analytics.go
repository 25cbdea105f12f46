package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/metrics"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

// analyticsStore is the scoped read surface the overview and chart need.
// Every input is filtered through the caller's scope, disputes included.
type analyticsStore interface {
	GetLeads(scope store.Scope) ([]models.Lead, error)
	GetCampaigns(scope store.Scope) ([]models.Campaign, error)
	GetEarnings(scope store.Scope) ([]models.Earning, error)
	PendingDisputeCount(scope store.Scope) (int, error)
}

type AnalyticsHandler struct {
	Store analyticsStore
}

func NewAnalyticsHandler(s *store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{Store: s}
}

// Overview derives headline counts and rates from the rows visible to the
// caller, so an admin sees platform totals and a referrer their own.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	scope := callerScope(c)

	leads, err := h.Store.GetLeads(scope)
	if err != nil {
		log.Println("Failed to fetch leads for analytics:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
		return
	}
	campaigns, err := h.Store.GetCampaigns(scope)
	if err != nil {
		log.Println("Failed to fetch campaigns for analytics:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
		return
	}
	earnings, err := h.Store.GetEarnings(scope)
	if err != nil {
		log.Println("Failed to fetch earnings for analytics:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
		return
	}
	pendingDisputes, err := h.Store.PendingDisputeCount(scope)
	if err != nil {
		log.Println("Failed to count pending disputes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, metrics.Overview(leads, campaigns, earnings, pendingDisputes))
}

// Performance serves the trailing-months chart series.
func (h *AnalyticsHandler) Performance(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	scope := callerScope(c)
	leads, err := h.Store.GetLeads(scope)
	if err != nil {
		log.Println("Failed to fetch leads for performance:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
		return
	}
	earnings, err := h.Store.GetEarnings(scope)
	if err != nil {
		log.Println("Failed to fetch earnings for performance:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, metrics.MonthlySeries(leads, earnings, time.Now().UTC(), months))
}
