package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	ws "referral-platform/internal/websocket"
)

func payoutWebhookRouter(h *PayoutHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/payout", h.HandlePayoutNotification)
	return r
}

// Without a disbursement gateway there is nothing to verify a notification
// against, so the unauthenticated webhook must not settle anything.
func TestPayoutWebhookRejectedWithoutGateway(t *testing.T) {
	h := &PayoutHandler{Hub: ws.NewHub()}
	r := payoutWebhookRouter(h)

	body := strings.NewReader(`{"reference_no":"PO-1700000000-abcd1234","status":"completed"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook/payout", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestPayoutWebhookRejectsMalformedBody(t *testing.T) {
	h := &PayoutHandler{Hub: ws.NewHub()}
	r := payoutWebhookRouter(h)

	body := strings.NewReader(`{"reference_no":"PO-1700000000-abcd1234"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook/payout", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
