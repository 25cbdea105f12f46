package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"referral-platform/internal/middleware"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
	ws "referral-platform/internal/websocket"
)

// disputeStore is the slice of the store the dispute endpoints use. The
// backing table is optional; every method may return store.ErrNotAvailable
// and the endpoints must degrade rather than crash.
type disputeStore interface {
	ListDisputes(bucket string, scope store.Scope) ([]models.Dispute, error)
	GetDispute(id int) (*models.Dispute, error)
	CreateDispute(dispute *models.Dispute) (*models.Dispute, error)
	RespondToDispute(id int, response string) (*models.Dispute, error)
	ResolveDispute(id int, adminID, decision string) (*models.Dispute, error)
}

type DisputeHandler struct {
	Store disputeStore
	Hub   *ws.Hub
}

func NewDisputeHandler(s *store.Store, hub *ws.Hub) *DisputeHandler {
	return &DisputeHandler{Store: s, Hub: hub}
}

// GetDisputes lists the caller's disputes. `bucket` is pending or resolved;
// a dispute is in exactly one of them. Deployments without a disputes table
// get an empty array.
func (h *DisputeHandler) GetDisputes(c *gin.Context) {
	bucket := c.DefaultQuery("bucket", store.BucketAll)

	disputes, err := h.Store.ListDisputes(bucket, callerScope(c))
	if errors.Is(err, store.ErrNotAvailable) {
		c.JSON(http.StatusOK, []models.Dispute{})
		return
	}
	if err != nil {
		log.Println("Failed to fetch disputes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch disputes"})
		return
	}
	c.JSON(http.StatusOK, disputes)
}

func (h *DisputeHandler) GetDispute(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dispute id"})
		return
	}

	dispute, err := h.Store.GetDispute(id)
	if errors.Is(err, store.ErrNotAvailable) || errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Dispute not found"})
		return
	}
	if err != nil {
		log.Println("Failed to fetch dispute:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dispute"})
		return
	}

	scope := callerScope(c)
	if !scope.All && !scope.Owns(dispute.ReferrerID) && !scope.Owns(dispute.BusinessID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Dispute not found"})
		return
	}
	c.JSON(http.StatusOK, dispute)
}

type CreateDisputeRequest struct {
	ReferrerID    string `json:"referrer_id" binding:"required"`
	LeadID        *int   `json:"lead_id"`
	BusinessClaim string `json:"business_claim" binding:"required"`
}

// CreateDispute opens a case against a lead; a business action.
func (h *DisputeHandler) CreateDispute(c *gin.Context) {
	var req CreateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dispute data"})
		return
	}

	businessID := c.GetString(middleware.CtxUserID)
	dispute, err := h.Store.CreateDispute(&models.Dispute{
		ReferrerID:    &req.ReferrerID,
		BusinessID:    &businessID,
		LeadID:        req.LeadID,
		BusinessClaim: req.BusinessClaim,
	})
	if errors.Is(err, store.ErrNotAvailable) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Disputes functionality is not available"})
		return
	}
	if err != nil {
		log.Println("Failed to create dispute:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create dispute"})
		return
	}
	c.JSON(http.StatusCreated, dispute)
}

type UpdateDisputeRequest struct {
	ReferrerResponse *string `json:"referrer_response"`
	Decision         *string `json:"decision" binding:"omitempty,oneof=approved rejected"`
}

// UpdateDispute records a referrer response or, for admins, the final
// decision. Resolution happens exactly once.
func (h *DisputeHandler) UpdateDispute(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dispute id"})
		return
	}

	var req UpdateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dispute data"})
		return
	}

	role := c.GetString(middleware.CtxRole)

	if req.Decision != nil {
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"message": "Only admins resolve disputes"})
			return
		}
		dispute, err := h.Store.ResolveDispute(id, c.GetString(middleware.CtxUserID), *req.Decision)
		switch {
		case errors.Is(err, store.ErrNotAvailable), errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Dispute not found"})
		case errors.Is(err, store.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"message": "Dispute already resolved"})
		case err != nil:
			log.Println("Failed to resolve dispute:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update dispute"})
		default:
			if dispute.ReferrerID != nil {
				h.Hub.Notify(ws.EventAlert{
					TargetUserID: *dispute.ReferrerID,
					Type:         ws.AlertDisputeResolved,
					Title:        "Dispute " + dispute.CaseID + " resolved: " + *req.Decision,
					EntityID:     dispute.ID,
				})
			}
			c.JSON(http.StatusOK, dispute)
		}
		return
	}

	if req.ReferrerResponse == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dispute data"})
		return
	}
	dispute, err := h.Store.RespondToDispute(id, *req.ReferrerResponse)
	if errors.Is(err, store.ErrNotAvailable) || errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Dispute not found"})
		return
	}
	if err != nil {
		log.Println("Failed to update dispute:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update dispute"})
		return
	}
	c.JSON(http.StatusOK, dispute)
}
