package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"referral-platform/internal/middleware"
	ws "referral-platform/internal/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	JWTSecret string
	Hub       *ws.Hub
}

func NewWebSocketHandler(jwtSecret string, hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{JWTSecret: jwtSecret, Hub: hub}
}

// ServeWs upgrades the connection and parks it in the hub. Browsers cannot
// set headers on websocket dials, so the access token arrives as a query
// parameter.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	claims, err := middleware.ParseToken(h.JWTSecret, c.Query("token"))
	if err != nil {
		log.Println("Invalid websocket token:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade connection:", err)
		return
	}

	client := &ws.Client{
		Hub:    h.Hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: claims.UserID,
	}

	client.Hub.Register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) writePump(client *ws.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error: %v", err)
			}
			break
		}
	}
}
