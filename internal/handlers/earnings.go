package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/middleware"
	"referral-platform/internal/store"
)

type EarningHandler struct {
	Store *store.Store
}

func NewEarningHandler(s *store.Store) *EarningHandler {
	return &EarningHandler{Store: s}
}

func (h *EarningHandler) GetEarnings(c *gin.Context) {
	earnings, err := h.Store.GetEarnings(callerScope(c))
	if err != nil {
		log.Println("Failed to fetch earnings:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch earnings"})
		return
	}
	c.JSON(http.StatusOK, earnings)
}

// GetEarningsByReferrer serves the legacy by-referrer route. Referrers can
// only ask about themselves; admins can ask about anyone.
func (h *EarningHandler) GetEarningsByReferrer(c *gin.Context) {
	referrerID := c.Param("referrerId")

	role := c.GetString(middleware.CtxRole)
	if role != "admin" && referrerID != c.GetString(middleware.CtxUserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	earnings, err := h.Store.GetEarningsByReferrer(referrerID)
	if err != nil {
		log.Println("Failed to fetch referrer earnings:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch referrer earnings"})
		return
	}
	c.JSON(http.StatusOK, earnings)
}
