package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"farmlink/internal/middleware"
	"farmlink/internal/models"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// OrderEvent is one status change on an order, pushed to the dashboards of
// the community that placed it.
type OrderEvent struct {
	OrderID     uint               `json:"order_id"`
	CommunityID uint               `json:"community_id"`
	Status      models.OrderStatus `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TrackingHub fans order-status events out to the community dashboards
// subscribed over WebSocket.
type TrackingHub struct {
	communityClients map[uint]map[*websocket.Conn]bool
	broadcast        chan OrderEvent
	mu               sync.Mutex
}

// NewTrackingHub creates the hub and starts its broadcast loop.
func NewTrackingHub() *TrackingHub {
	hub := &TrackingHub{
		communityClients: make(map[uint]map[*websocket.Conn]bool),
		broadcast:        make(chan OrderEvent, 100),
	}
	go hub.run()
	return hub
}

// Publish queues an event for broadcast. Non-blocking: when the channel is
// full the event is dropped, the dashboards refetch on reconnect anyway.
func (h *TrackingHub) Publish(ev OrderEvent) {
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithField("order_id", ev.OrderID).Warn("TrackingHub: broadcast channel full, dropping event")
	}
}

// Close stops the broadcast loop. Callers must be done publishing first; a
// Publish after Close panics on the closed channel.
func (h *TrackingHub) Close() {
	close(h.broadcast)
}

func (h *TrackingHub) run() {
	for ev := range h.broadcast {
		h.mu.Lock()
		for conn := range h.communityClients[ev.CommunityID] {
			if err := conn.WriteJSON(ev); err != nil {
				logrus.WithError(err).Warn("TrackingHub: write failed, dropping client")
				conn.Close()
				delete(h.communityClients[ev.CommunityID], conn)
			}
		}
		h.mu.Unlock()
	}
}

func (h *TrackingHub) register(communityID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.communityClients[communityID] == nil {
		h.communityClients[communityID] = make(map[*websocket.Conn]bool)
	}
	h.communityClients[communityID][conn] = true
}

func (h *TrackingHub) unregister(communityID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.communityClients[communityID], conn)
}

type LiveController struct {
	Hub  *TrackingHub
	Auth *middleware.Auth
}

// Orders upgrades the connection and streams order-status events for one
// community. Browsers cannot set an Authorization header on a WebSocket
// handshake, so the token rides in the query string.
func (l *LiveController) Orders(c *gin.Context) {
	token, err := l.Auth.ValidateToken(c.Query("token"))
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	communityID, err := parseID(c.Query("community_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("LiveOrders: upgrade failed")
		return
	}

	l.Hub.register(communityID, conn)
	defer func() {
		l.Hub.unregister(communityID, conn)
		conn.Close()
	}()

	// Drain the connection until the client goes away; the hub owns writes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
