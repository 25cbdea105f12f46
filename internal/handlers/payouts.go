package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/iris"

	"referral-platform/internal/middleware"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
	ws "referral-platform/internal/websocket"
)

type PayoutHandler struct {
	Store *store.Store
	Iris  *iris.Client
	Hub   *ws.Hub
}

// NewPayoutHandler wires the disbursement gateway. apiKey may be empty, in
// which case payouts are recorded locally and settled by the webhook or an
// operator.
func NewPayoutHandler(s *store.Store, apiKey string, hub *ws.Hub) *PayoutHandler {
	h := &PayoutHandler{Store: s, Hub: hub}
	if apiKey != "" {
		var c iris.Client
		c.New(apiKey, midtrans.Sandbox)
		h.Iris = &c
	}
	return h
}

func (h *PayoutHandler) GetPayouts(c *gin.Context) {
	payouts, err := h.Store.GetPayouts(callerScope(c))
	if err != nil {
		log.Println("Failed to fetch payouts:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payouts"})
		return
	}
	c.JSON(http.StatusOK, payouts)
}

type RequestPayoutRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// RequestPayout opens a withdrawal of accumulated earnings to the caller's
// default payout method, capped by the available balance.
func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	var req RequestPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	balance, err := h.Store.AvailableBalance(userID)
	if err != nil {
		log.Println("Failed to compute balance:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	if req.Amount > balance {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInsufficientBalance.Error()})
		return
	}

	method, err := h.Store.DefaultPayoutMethod(userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Add a payout method before withdrawing"})
		return
	}
	if err != nil {
		log.Println("Failed to load payout method:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}

	reference := "PO-" + strconv.FormatInt(time.Now().Unix(), 10) + "-" + uuid.NewString()[:8]

	// Bank transfers go through the disbursement gateway when configured;
	// its reference supersedes ours so the webhook can correlate.
	if h.Iris != nil && method.Type == "bank_transfer" {
		var details models.BankDetails
		if err := json.Unmarshal(method.Details, &details); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payout method details are malformed"})
			return
		}

		resp, irisErr := h.Iris.CreatePayout(iris.CreatePayoutReq{
			Payouts: []iris.CreatePayoutDetailReq{{
				BeneficiaryName:    details.AccountName,
				BeneficiaryAccount: details.AccountNumber,
				BeneficiaryBank:    details.BankCode,
				BeneficiaryEmail:   details.Email,
				Amount:             fmt.Sprintf("%.2f", req.Amount),
				Notes:              "Referral earnings withdrawal " + reference,
			}},
		})
		if irisErr != nil || resp == nil || len(resp.Payouts) == 0 {
			log.Println("Disbursement gateway error:", irisErr)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payout gateway error."})
			return
		}
		reference = resp.Payouts[0].ReferenceNo
	}

	payout, err := h.Store.CreatePayout(userID, req.Amount, method.Type, reference)
	if err != nil {
		log.Println("Failed to create payout:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}

	h.Store.RecordActivity(userID, "payout_requested", "Payout requested",
		fmt.Sprintf("%.2f via %s", req.Amount, method.Type), "payout", strconv.Itoa(payout.ID), nil)
	c.JSON(http.StatusCreated, payout)
}

// payoutNotification is the gateway's status webhook payload.
type payoutNotification struct {
	ReferenceNo string `json:"reference_no" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

// HandlePayoutNotification settles or fails a payout. Completed payouts mark
// the user's pending earnings paid under the payout's reference. Duplicate
// notifications are acknowledged without reapplying.
func (h *PayoutHandler) HandlePayoutNotification(c *gin.Context) {
	var notification payoutNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		log.Println("Failed to bind payout notification:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification format"})
		return
	}

	// The webhook is unauthenticated. Never settle off the caller's body
	// alone; the status must come from the gateway, so without one
	// configured the endpoint is inert.
	if h.Iris == nil {
		log.Println("Payout webhook received but no gateway configured, rejecting")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payout gateway not configured"})
		return
	}
	detail, irisErr := h.Iris.GetPayoutDetails(notification.ReferenceNo)
	if irisErr != nil || detail == nil {
		log.Println("Failed to verify payout with gateway:", irisErr)
		c.JSON(http.StatusNotFound, gin.H{"error": "Payout not found or gateway error"})
		return
	}
	notification.Status = detail.Status

	payout, err := h.Store.GetPayoutByReference(notification.ReferenceNo)
	if errors.Is(err, store.ErrNotFound) {
		log.Println("Notification for unknown payout reference:", notification.ReferenceNo)
		c.JSON(http.StatusNotFound, gin.H{"error": "Payout not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if payout.Status == store.PayoutCompleted || payout.Status == store.PayoutFailed {
		log.Println("Duplicate payout webhook, already final:", notification.ReferenceNo)
		c.JSON(http.StatusOK, gin.H{"status": "ok (duplicate)"})
		return
	}

	switch notification.Status {
	case "completed", "processed":
		now := time.Now().UTC()
		payout, err = h.Store.UpdatePayoutStatus(notification.ReferenceNo, store.PayoutCompleted, &now)
		if err != nil {
			log.Println("Failed to update payout status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if payout.UserID != nil {
			if _, err := h.Store.MarkEarningsPaid(*payout.UserID, notification.ReferenceNo, now, payout.Amount); err != nil {
				log.Println("Failed to mark earnings paid:", err)
			}
			h.Hub.Notify(ws.EventAlert{
				TargetUserID: *payout.UserID,
				Type:         ws.AlertPayoutSettled,
				Title:        "Payout completed",
				Amount:       payout.Amount,
				Reference:    notification.ReferenceNo,
			})
		}
	case "failed", "rejected":
		payout, err = h.Store.UpdatePayoutStatus(notification.ReferenceNo, store.PayoutFailed, nil)
		if err != nil {
			log.Println("Failed to update payout status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if payout.UserID != nil {
			h.Hub.Notify(ws.EventAlert{
				TargetUserID: *payout.UserID,
				Type:         ws.AlertPayoutFailed,
				Title:        "Payout failed",
				Amount:       payout.Amount,
				Reference:    notification.ReferenceNo,
			})
		}
	default:
		log.Println("Received non-final payout status:", notification.Status)
		c.JSON(http.StatusOK, gin.H{"status": "ok (not final)"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type CreatePayoutMethodRequest struct {
	Type    string          `json:"type" binding:"required,oneof=bank_transfer paypal"`
	Details json.RawMessage `json:"details" binding:"required"`
}

func (h *PayoutHandler) GetPayoutMethods(c *gin.Context) {
	methods, err := h.Store.GetPayoutMethods(c.GetString(middleware.CtxUserID))
	if err != nil {
		log.Println("Failed to fetch payout methods:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payout methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (h *PayoutHandler) CreatePayoutMethod(c *gin.Context) {
	var req CreatePayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Type == "bank_transfer" {
		var details models.BankDetails
		if err := json.Unmarshal(req.Details, &details); err != nil ||
			details.AccountName == "" || details.AccountNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bank_transfer details require account_name and account_number"})
			return
		}
	}

	method, err := h.Store.CreatePayoutMethod(c.GetString(middleware.CtxUserID), req.Type, req.Details)
	if err != nil {
		log.Println("Failed to create payout method:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	c.JSON(http.StatusCreated, method)
}

func (h *PayoutHandler) SetDefaultPayoutMethod(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method id"})
		return
	}

	err = h.Store.SetDefaultPayoutMethod(c.GetString(middleware.CtxUserID), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payout method not found"})
		return
	}
	if err != nil {
		log.Println("Failed to set default payout method:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default updated."})
}

func (h *PayoutHandler) DeletePayoutMethod(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method id"})
		return
	}

	err = h.Store.DeletePayoutMethod(c.GetString(middleware.CtxUserID), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payout method not found"})
		return
	}
	if err != nil {
		log.Println("Failed to delete payout method:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payout method removed."})
}
