package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lg/wellness-go-api/internal/tracker"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 25 * time.Second
	wsPongWait   = 60 * time.Second
	wsSendBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth is the bearer token, not cookies, so cross-origin upgrades are safe.
	CheckOrigin: func(*http.Request) bool { return true },
}

// realtimeMessage is what connected clients receive.
type realtimeMessage struct {
	Kind string       `json:"kind"`
	Goal tracker.Goal `json:"goal"`
}

// wsClient is one websocket connection. Only writePump writes to conn.
type wsClient struct {
	userID int
	conn   *websocket.Conn
	send   chan []byte
}

// realtimeHub fans goal updates out to each user's open connections. It
// implements tracker.Notifier.
type realtimeHub struct {
	log     *slog.Logger
	onCount func(delta int)

	mu      sync.RWMutex
	clients map[int]map[*wsClient]struct{}
}

func newRealtimeHub(logger *slog.Logger, onCount func(delta int)) *realtimeHub {
	if onCount == nil {
		onCount = func(int) {}
	}
	return &realtimeHub{
		log:     logger,
		onCount: onCount,
		clients: make(map[int]map[*wsClient]struct{}),
	}
}

func (h *realtimeHub) register(c *wsClient) {
	h.mu.Lock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*wsClient]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
	h.mu.Unlock()
	h.onCount(1)
}

func (h *realtimeHub) unregister(c *wsClient) {
	h.mu.Lock()
	set := h.clients[c.userID]
	_, ok := set[c]
	if ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		h.onCount(-1)
	}
}

// connections returns the number of open connections for userID.
func (h *realtimeHub) connections(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// GoalRecalculated pushes the goal to every connection of userID. Slow
// clients whose buffer is full miss the message rather than block the caller.
func (h *realtimeHub) GoalRecalculated(userID int, goal tracker.Goal) {
	msg, err := json.Marshal(realtimeMessage{Kind: "goal.recalculated", Goal: goal})
	if err != nil {
		h.log.Error("marshal realtime message", slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("realtime client buffer full, dropping message", slog.Int("user_id", userID))
		}
	}
}

// serveWS upgrades the request and streams goal updates until the client
// disconnects.
// GET /api/ws (token via Authorization header or ?token=).
func (h *Handler) serveWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		return
	}

	client := &wsClient{
		userID: c.GetInt("user_id"),
		conn:   conn,
		send:   make(chan []byte, wsSendBuffer),
	}
	h.hub.register(client)

	go client.writePump()
	client.readPump(h.hub)
}

// readPump discards client messages and unregisters on close or error.
func (c *wsClient) readPump(hub *realtimeHub) {
	defer func() {
		hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends queued messages and keepalive pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
