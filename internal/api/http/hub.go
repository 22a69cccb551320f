package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// ReleaseHub pushes sweep summaries to connected admin dashboards.
type ReleaseHub struct {
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	nextID int64
	conns  map[int64]*websocket.Conn
	locks  map[int64]*sync.Mutex
}

func NewReleaseHub() *ReleaseHub {
	return &ReleaseHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[int64]*websocket.Conn),
		locks: make(map[int64]*sync.Mutex),
	}
}

// ServeWS upgrades an authenticated admin request.
func (h *ReleaseHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Release feed upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.conns[id] = conn
	h.locks[id] = &sync.Mutex{}
	h.mu.Unlock()

	if claims, ok := ClaimsFromContext(r.Context()); ok {
		logger.Info("Release feed connected", "connID", id, "userID", claims.UserID)
	}

	go h.pingLoop(id, conn)
	go h.readLoop(id, conn)
}

// Connections reports the number of open feeds.
func (h *ReleaseHub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// BroadcastSweep sends the summary of a finished sweep to every feed.
func (h *ReleaseHub) BroadcastSweep(result *domain.SweepResult) {
	if result == nil {
		return
	}
	h.broadcast(toSweepEvent(result))
}

func (h *ReleaseHub) pingLoop(id int64, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.RLock()
		alive := h.conns[id] == conn
		h.mu.RUnlock()
		if !alive {
			return
		}
		h.safeWrite(id, func(c *websocket.Conn) error {
			return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		})
	}
}

func (h *ReleaseHub) readLoop(id int64, conn *websocket.Conn) {
	defer h.closeConn(id, conn)

	conn.SetReadLimit(4 << 10)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(message)), "ping") {
			h.safeWrite(id, func(c *websocket.Conn) error {
				return c.WriteMessage(websocket.TextMessage, []byte("pong"))
			})
		}
	}
}

func (h *ReleaseHub) closeConn(id int64, conn *websocket.Conn) {
	_ = conn.Close()
	h.mu.Lock()
	if current, ok := h.conns[id]; ok && current == conn {
		delete(h.conns, id)
		delete(h.locks, id)
	}
	h.mu.Unlock()
}

func (h *ReleaseHub) safeWrite(id int64, fn func(*websocket.Conn) error) {
	h.mu.RLock()
	conn := h.conns[id]
	mu := h.locks[id]
	h.mu.RUnlock()
	if conn == nil || mu == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(conn); err != nil {
		logger.Warn("Release feed write failed", "connID", id, "error", err)
		h.closeConn(id, conn)
	}
}

func (h *ReleaseHub) broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Release feed marshal failed", "error", err)
		return
	}
	h.mu.RLock()
	ids := make([]int64, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	for _, id := range ids {
		h.safeWrite(id, func(conn *websocket.Conn) error {
			return conn.WriteMessage(websocket.TextMessage, data)
		})
	}
}
