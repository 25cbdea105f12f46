package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

type ActivityHandler struct {
	Store *store.Store
}

func NewActivityHandler(s *store.Store) *ActivityHandler {
	return &ActivityHandler{Store: s}
}

// GetActivities returns the caller's feed, or an empty array when the
// deployment has no activities table.
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	activities, err := h.Store.ListActivities(callerScope(c), limit)
	if errors.Is(err, store.ErrNotAvailable) {
		c.JSON(http.StatusOK, []models.Activity{})
		return
	}
	if err != nil {
		log.Println("Failed to fetch activities:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}
