package websocket

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

// Alert types pushed over the hub.
const (
	AlertEarningAccrued  = "earning_accrued"
	AlertPayoutSettled   = "payout_settled"
	AlertPayoutFailed    = "payout_failed"
	AlertDisputeResolved = "dispute_resolved"
)

// EventAlert is a notification for a single user's open connection.
type EventAlert struct {
	TargetUserID string  `json:"-"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount,omitempty"`
	Reference    string  `json:"reference,omitempty"`
	EntityID     int     `json:"entity_id,omitempty"`
}

type Hub struct {
	Clients        map[string]*Client
	Register       chan *Client
	Unregister     chan *Client
	BroadcastAlert chan EventAlert
}

func NewHub() *Hub {
	return &Hub{
		Clients:        make(map[string]*Client),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		BroadcastAlert: make(chan EventAlert, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.UserID] = client
			log.Printf("WebSocket client registered for user %s", client.UserID)

		case client := <-h.Unregister:
			if _, ok := h.Clients[client.UserID]; ok {
				delete(h.Clients, client.UserID)
				close(client.Send)
				log.Printf("WebSocket client unregistered for user %s", client.UserID)
			}

		case alert := <-h.BroadcastAlert:
			if client, ok := h.Clients[alert.TargetUserID]; ok {
				jsonData, err := json.Marshal(alert)

				if err != nil {
					log.Println("Failed to marshal event alert:", err)
					continue
				}

				select {
				case client.Send <- jsonData:
				default:
					close(client.Send)
					delete(h.Clients, client.UserID)
				}
			}
		}
	}
}

// Notify is a non-blocking send used from HTTP handlers; alerts for users
// with no open connection are dropped.
func (h *Hub) Notify(alert EventAlert) {
	select {
	case h.BroadcastAlert <- alert:
	default:
		log.Println("Alert channel busy, dropping alert for user", alert.TargetUserID)
	}
}
