package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/middleware"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

type CampaignHandler struct {
	Store *store.Store
}

func NewCampaignHandler(s *store.Store) *CampaignHandler {
	return &CampaignHandler{Store: s}
}

func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.Store.GetCampaigns(callerScope(c))
	if err != nil {
		log.Println("Failed to fetch campaigns:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch campaigns"})
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid campaign id"})
		return
	}

	campaign, err := h.Store.GetCampaign(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Campaign not found"})
		return
	}
	if err != nil {
		log.Println("Failed to fetch campaign:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch campaign"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}

type CreateCampaignRequest struct {
	Name                string    `json:"name" binding:"required"`
	Description         *string   `json:"description"`
	RewardPerConversion float64   `json:"reward_per_conversion" binding:"required,gt=0"`
	MaxBudget           float64   `json:"max_budget" binding:"required,gt=0"`
	StartDate           time.Time `json:"start_date" binding:"required"`
	EndDate             time.Time `json:"end_date" binding:"required"`
	ServiceArea         *string   `json:"service_area"`
	PostcodeStart       *string   `json:"postcode_start"`
	PostcodeEnd         *string   `json:"postcode_end"`
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid campaign data"})
		return
	}
	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid campaign data"})
		return
	}

	businessID := c.GetString(middleware.CtxUserID)
	campaign, err := h.Store.CreateCampaign(&models.Campaign{
		BusinessID:          &businessID,
		Name:                req.Name,
		Description:         req.Description,
		RewardPerConversion: req.RewardPerConversion,
		MaxBudget:           req.MaxBudget,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ServiceArea:         req.ServiceArea,
		PostcodeStart:       req.PostcodeStart,
		PostcodeEnd:         req.PostcodeEnd,
	})
	if err != nil {
		log.Println("Failed to create campaign:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create campaign"})
		return
	}

	h.Store.RecordActivity(businessID, "campaign_created", "Campaign created",
		campaign.Name, "campaign", strconv.Itoa(campaign.ID), nil)
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid campaign id"})
		return
	}

	// Only the owning business or an admin may modify a campaign.
	scope := callerScope(c)
	existing, err := h.Store.GetCampaign(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Campaign not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update campaign"})
		return
	}
	if !scope.All && !scope.Owns(existing.BusinessID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Campaign not found"})
		return
	}

	var patch store.CampaignPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid campaign data"})
		return
	}
	if patch.MaxBudget != nil && *patch.MaxBudget < existing.BudgetUsed {
		c.JSON(http.StatusBadRequest, gin.H{"message": "max_budget cannot drop below budget already used"})
		return
	}

	campaign, err := h.Store.UpdateCampaign(id, patch)
	if err != nil {
		log.Println("Failed to update campaign:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update campaign"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}
