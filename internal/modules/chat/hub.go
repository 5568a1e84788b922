package chat

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"unidomus/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSEvent is a real-time event pushed to clients. Rooms are keyed by match ID;
// a client only receives events for matches it participates in.
type WSEvent struct {
	Type    string      `json:"type"`
	MatchID int64       `json:"matchID"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage = "new_message"
	EventTyping     = "typing"
	EventError      = "error"
)

// connection represents a single WebSocket client
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[int64]bool // subscribed match IDs
}

// Hub manages all active WebSocket connections
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection // userID -> connection
	inbound     InboundHandler
}

// InboundHandler receives client-originated chat messages. The hub never
// touches storage itself; persistence and fan-out live behind this interface.
type InboundHandler interface {
	HandleInbound(userID, matchID int64, text string) error
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

// SetInboundHandler must be called before ServeWS. It is separate from the
// constructor to break the cycle between the hub and the match service.
func (h *Hub) SetInboundHandler(handler InboundHandler) {
	h.inbound = handler
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	existing := h.connections[c.userID]
	h.connections[c.userID] = c
	h.mu.Unlock()

	// Closing the socket lets the replaced connection's own read loop wind
	// down. Its send channel must stay open while that loop can still write.
	if existing != nil {
		existing.conn.Close()
	}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// IsOnline reports whether the user has an open socket.
func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// BroadcastMessage pushes a persisted message to every connected participant
// of the match. Satisfies the match service's broadcaster dependency.
func (h *Hub) BroadcastMessage(matchID int64, msg *domain.MatchMessage) {
	h.broadcastToRoom(matchID, &WSEvent{
		Type:    EventNewMessage,
		MatchID: matchID,
		Payload: msg,
	})
}

func (h *Hub) broadcastToRoom(matchID int64, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.rooms[matchID] {
			select {
			case c.send <- data:
			default:
				// Client too slow, skip it
			}
		}
	}
}

// ServeWS registers a new connection and starts read/write loops. Blocks
// until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, initialRooms []int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
		rooms:  make(map[int64]bool),
	}

	for _, id := range initialRooms {
		c.rooms[id] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// Close terminates every open connection. Used on shutdown. Sockets are
// closed rather than send channels so read loops that are mid-message cannot
// trip over a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, c := range h.connections {
		c.conn.Close()
		delete(h.connections, userID)
	}
}

type inboundEvent struct {
	Type    string `json:"type"`
	MatchID int64  `json:"matchID"`
	Text    string `json:"text,omitempty"`
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event inboundEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			// Membership is re-checked server side on every send, so a bogus
			// subscription only wastes the client's own bandwidth.
			h.mu.Lock()
			c.rooms[event.MatchID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.rooms, event.MatchID)
			h.mu.Unlock()
		case "typing":
			if c.rooms[event.MatchID] {
				h.broadcastToRoom(event.MatchID, &WSEvent{
					Type:    EventTyping,
					MatchID: event.MatchID,
					Payload: map[string]int64{"userID": c.userID},
				})
			}
		case "send_message":
			if h.inbound == nil {
				continue
			}
			if err := h.inbound.HandleInbound(c.userID, event.MatchID, event.Text); err != nil {
				h.sendError(c, event.MatchID, err)
			}
		}
	}
}

func (h *Hub) sendError(c *connection, matchID int64, cause error) {
	data, err := json.Marshal(&WSEvent{
		Type:    EventError,
		MatchID: matchID,
		Payload: map[string]string{"message": cause.Error()},
	})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
