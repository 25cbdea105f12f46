package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/middleware"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
	ws "referral-platform/internal/websocket"
)

// leadStore is the slice of the store the lead endpoints use.
type leadStore interface {
	GetLeads(scope store.Scope) ([]models.Lead, error)
	GetLead(id int) (*models.Lead, error)
	GetCampaign(id int) (*models.Campaign, error)
	CreateLead(lead *models.Lead) (*models.Lead, error)
	UpdateLead(id int, patch store.LeadPatch) (*models.Lead, *models.Earning, error)
	RecordActivity(userID, activityType, title, description, entityType, entityID string, metadata map[string]interface{})
}

type LeadHandler struct {
	Store leadStore
	Hub   *ws.Hub
}

func NewLeadHandler(s *store.Store, hub *ws.Hub) *LeadHandler {
	return &LeadHandler{Store: s, Hub: hub}
}

func callerScope(c *gin.Context) store.Scope {
	return store.ForRole(c.GetString(middleware.CtxRole), c.GetString(middleware.CtxUserID))
}

func (h *LeadHandler) GetLeads(c *gin.Context) {
	leads, err := h.Store.GetLeads(callerScope(c))
	if err != nil {
		log.Println("Failed to fetch leads:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch leads"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lead id"})
		return
	}

	lead, err := h.Store.GetLead(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}
	if err != nil {
		log.Println("Failed to fetch lead:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch lead"})
		return
	}

	// Rows outside the caller's visibility read as absent, like RLS does.
	// A business sees only leads attached to its own campaigns.
	scope := callerScope(c)
	switch {
	case scope.All:
	case scope.Business != "":
		owned := false
		if lead.CampaignID != nil {
			campaign, err := h.Store.GetCampaign(*lead.CampaignID)
			if err == nil && scope.Owns(campaign.BusinessID) {
				owned = true
			}
		}
		if !owned {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
			return
		}
	default:
		if !scope.Owns(lead.ReferrerID) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
			return
		}
	}
	c.JSON(http.StatusOK, lead)
}

type CreateLeadRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Service      string  `json:"service" binding:"required"`
	Value        float64 `json:"value" binding:"required,gte=0"`
	CampaignID   *int    `json:"campaign_id"`
	BusinessName *string `json:"business_name"`
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lead data"})
		return
	}

	referrerID := c.GetString(middleware.CtxUserID)
	lead, err := h.Store.CreateLead(&models.Lead{
		ReferrerID:   &referrerID,
		CampaignID:   req.CampaignID,
		CustomerName: req.CustomerName,
		Service:      req.Service,
		Value:        req.Value,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		log.Println("Failed to create lead:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create lead"})
		return
	}

	h.Store.RecordActivity(referrerID, "lead_created", "New lead submitted",
		lead.CustomerName+" - "+lead.Service, "lead", strconv.Itoa(lead.ID), nil)
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) UpdateLead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lead id"})
		return
	}

	var patch store.LeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lead data"})
		return
	}
	if patch.Value != nil && *patch.Value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid lead data"})
		return
	}

	// Referrers may only edit their own leads and never the status; a
	// business may only touch leads on its own campaigns.
	role := c.GetString(middleware.CtxRole)
	if role != "admin" {
		lead, err := h.Store.GetLead(id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update lead"})
			return
		}

		switch role {
		case "business":
			owned := false
			if lead.CampaignID != nil {
				campaign, err := h.Store.GetCampaign(*lead.CampaignID)
				if err == nil && callerScope(c).Owns(campaign.BusinessID) {
					owned = true
				}
			}
			if !owned {
				c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
				return
			}
		default:
			if !callerScope(c).Owns(lead.ReferrerID) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
				return
			}
			if patch.Status != nil {
				c.JSON(http.StatusForbidden, gin.H{"message": "Referrers cannot change lead status"})
				return
			}
		}
	}

	lead, earning, err := h.Store.UpdateLead(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}
	if err != nil {
		log.Println("Failed to update lead:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update lead"})
		return
	}

	if earning != nil && earning.ReferrerID != nil {
		h.Store.RecordActivity(*earning.ReferrerID, "earning_accrued", "Commission earned",
			fmt.Sprintf("Lead %s converted", lead.CustomerName), "earning", strconv.Itoa(earning.ID), nil)
		h.Hub.Notify(ws.EventAlert{
			TargetUserID: *earning.ReferrerID,
			Type:         ws.AlertEarningAccrued,
			Title:        "You earned a commission",
			Amount:       earning.Amount,
			EntityID:     earning.ID,
		})
	}
	c.JSON(http.StatusOK, lead)
}
