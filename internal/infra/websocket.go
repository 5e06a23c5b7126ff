package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait   = 10 * time.Second
	wsPongWait    = 60 * time.Second
	wsPingPeriod  = 30 * time.Second
	wsReadLimit   = 4096
	wsSendBuffer  = 64
	wsDefaultRoom = "ui"
)

// WSHub manages WebSocket connections and room-based message delivery.
// Browser pages join the "ui" room and receive catalog notifications.
type WSHub struct {
	mu       sync.RWMutex
	rooms    map[string]map[string]*WSConn // room -> connID -> conn
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// WSConn is a hub member. Send is closed by the hub when the member leaves.
type WSConn struct {
	ID   string
	Room string
	Send chan []byte
}

// WSMessage is the payload sent over WebSocket.
type WSMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// NewWSHub creates a hub. allowedOrigins restricts the upgrade; empty or "*"
// accepts every origin.
func NewWSHub(logger *slog.Logger, allowedOrigins []string) *WSHub {
	h := &WSHub{
		rooms:  make(map[string]map[string]*WSConn),
		logger: logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(set) == 0 {
			return true
		}
		return set[origin]
	}
}

// Join adds a connection to a room.
func (h *WSHub) Join(room string, conn *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*WSConn)
	}
	conn.Room = room
	h.rooms[room][conn.ID] = conn
}

// Leave removes a connection from a room and closes its send channel.
func (h *WSHub) Leave(room string, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.rooms[room]
	if !ok {
		return
	}
	if conn, ok := conns[connID]; ok {
		close(conn.Send)
		delete(conns, connID)
	}
	if len(conns) == 0 {
		delete(h.rooms, room)
	}
}

// Publish sends a message to all connections in a room. Members with a full
// buffer miss the message.
func (h *WSHub) Publish(room string, event string, data interface{}) {
	msg := WSMessage{Event: event, Data: data}
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("ws marshal error", "error", err, "room", room, "event", event)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.rooms[room] {
		select {
		case conn.Send <- payload:
		default:
			h.logger.Warn("ws send buffer full", "conn_id", conn.ID, "room", room, "event", event)
		}
	}
}

// ConnectionCount returns the total number of active connections.
func (h *WSHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, conns := range h.rooms {
		count += len(conns)
	}
	return count
}

// Shutdown closes all connections; their write pumps send a close frame.
func (h *WSHub) Shutdown(_ context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, conns := range h.rooms {
		for _, conn := range conns {
			close(conn.Send)
		}
		delete(h.rooms, room)
	}
}

// ServeWS upgrades the request and joins the connection to the UI room. It
// returns once the pumps are started.
func (h *WSHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	conn := &WSConn{ID: uuid.NewString(), Send: make(chan []byte, wsSendBuffer)}
	h.Join(wsDefaultRoom, conn)
	h.logger.Debug("ws connected", "conn_id", conn.ID, "remote_addr", r.RemoteAddr)

	go h.writePump(ws, conn)
	go h.readPump(ws, conn)
}

func (h *WSHub) writePump(ws *websocket.Conn, conn *WSConn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed. Pages do
// not send commands over the socket.
func (h *WSHub) readPump(ws *websocket.Conn, conn *WSConn) {
	defer func() {
		h.Leave(conn.Room, conn.ID)
		ws.Close()
		h.logger.Debug("ws disconnected", "conn_id", conn.ID)
	}()

	ws.SetReadLimit(wsReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("ws read error", "conn_id", conn.ID, "error", err)
			}
			return
		}
	}
}
