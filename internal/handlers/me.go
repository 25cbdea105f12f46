package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/metrics"
	"referral-platform/internal/middleware"
	"referral-platform/internal/tables"
)

// MyDataHandler serves reads through the PostgREST row API with the caller's
// own token, so the database's row-level policies enforce visibility exactly
// as they do for the web client.
type MyDataHandler struct {
	Tables *tables.Client
}

func NewMyDataHandler(t *tables.Client) *MyDataHandler {
	return &MyDataHandler{Tables: t}
}

func (h *MyDataHandler) MyLeads(c *gin.Context) {
	leads, err := h.Tables.MyLeads(c.GetString(middleware.CtxToken))
	if err != nil {
		log.Println("Row API leads fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch leads"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *MyDataHandler) MyCampaigns(c *gin.Context) {
	campaigns, err := h.Tables.MyCampaigns(c.GetString(middleware.CtxToken))
	if err != nil {
		log.Println("Row API campaigns fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch campaigns"})
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func (h *MyDataHandler) MyEarnings(c *gin.Context) {
	earnings, err := h.Tables.MyEarnings(c.GetString(middleware.CtxToken))
	if err != nil {
		log.Println("Row API earnings fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch earnings"})
		return
	}
	c.JSON(http.StatusOK, earnings)
}

func (h *MyDataHandler) MyPayouts(c *gin.Context) {
	payouts, err := h.Tables.MyPayouts(c.GetString(middleware.CtxToken))
	if err != nil {
		log.Println("Row API payouts fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payouts"})
		return
	}
	c.JSON(http.StatusOK, payouts)
}

// MyEarningsSummary fetches the caller's earnings and payout history through
// the row API and folds them into balances and a monthly chart in memory.
func (h *MyDataHandler) MyEarningsSummary(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)

	earnings, err := h.Tables.MyEarnings(token)
	if err != nil {
		log.Println("Row API earnings fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch earnings"})
		return
	}
	payouts, err := h.Tables.MyPayouts(token)
	if err != nil {
		log.Println("Row API payouts fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payouts"})
		return
	}

	c.JSON(http.StatusOK, metrics.Summarize(earnings, payouts, time.Now().UTC(), 6))
}
