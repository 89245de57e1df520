package dating

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
	"github.com/imadgeboyega/kiekky-datecards/internal/common/utils"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames
	maxMessageSize = 4 * 1024

	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are enforced by the CORS layer in front of the API
		return true
	},
}

// Message is the envelope written to every socket.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub keeps one live connection per user and pushes events to them.
type Hub struct {
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	register   chan *Client
	unregister chan *Client

	done     chan struct{}
	stopOnce sync.Once

	logger *zap.Logger
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	userID    int64
	closeOnce sync.Once
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.Named("hub"),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Shutdown stops Run and closes every connection. Safe to call more than once.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	// Replace an older connection for the same user
	if old, exists := h.clients[client.userID]; exists && old != client {
		old.close()
	}
	h.clients[client.userID] = client
	connectedClients.Set(float64(len(h.clients)))

	h.logger.Debug("user connected", zap.Int64("user_id", client.userID), zap.Int("clients", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if current, exists := h.clients[client.userID]; exists && current == client {
		delete(h.clients, client.userID)
		connectedClients.Set(float64(len(h.clients)))
		h.logger.Debug("user disconnected", zap.Int64("user_id", client.userID), zap.Int("clients", len(h.clients)))
	}
	client.close()
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for id, client := range h.clients {
		client.close()
		delete(h.clients, id)
	}
	connectedClients.Set(0)
}

// IsUserOnline reports whether userID currently has a live connection.
func (h *Hub) IsUserOnline(userID int64) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	_, ok := h.clients[userID]
	return ok
}

// Publish queues an event for userID without blocking. It returns false when
// the user is offline or their send buffer is full; the event is then dropped.
func (h *Hub) Publish(userID int64, eventType string, payload interface{}) bool {
	data, err := json.Marshal(Message{Type: eventType, Data: payload})
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("type", eventType), zap.Error(err))
		notificationsTotal.WithLabelValues(eventType, "error").Inc()
		return false
	}

	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		h.logger.Debug("user offline, event not delivered", zap.Int64("user_id", userID), zap.String("type", eventType))
		notificationsTotal.WithLabelValues(eventType, "offline").Inc()
		return false
	}

	select {
	case client.send <- data:
		notificationsTotal.WithLabelValues(eventType, "delivered").Inc()
		return true
	default:
		h.logger.Debug("dropping event for slow client", zap.Int64("user_id", userID), zap.String("type", eventType))
		notificationsTotal.WithLabelValues(eventType, "dropped").Inc()
		return false
	}
}

// ServeWS upgrades an authenticated request and attaches it to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn("websocket upgrade failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", zap.Int64("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
