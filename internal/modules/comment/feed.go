package comment

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// subscriber is one open feed connection. Every frame goes through send so
// writePump is the only goroutine touching the socket's write side.
type subscriber struct {
	blogID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans comment events out to feed subscribers, grouped per blog.
// A subscriber is one open WebSocket; a user may hold several.
type Hub struct {
	rooms map[int64]map[*subscriber]bool
	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[*subscriber]bool),
	}
}

func (h *Hub) register(s *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[s.blogID]
	if !exists {
		room = make(map[*subscriber]bool)
		h.rooms[s.blogID] = room
	}
	room[s] = true
}

func (h *Hub) unregister(s *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[s.blogID]; exists && room[s] {
		delete(room, s)
		close(s.send)
		if len(room) == 0 {
			delete(h.rooms, s.blogID)
		}
	}
}

// Broadcast queues the event for every subscriber of the blog's feed.
// Subscribers whose send buffer is full miss the event rather than block
// the caller.
func (h *Hub) Broadcast(blogID int64, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for s := range h.rooms[blogID] {
		select {
		case s.send <- data:
		default:
		}
	}
}

// ServeFeed registers the connection on the blog's feed and runs its pumps.
// Blocks until the client disconnects.
func (h *Hub) ServeFeed(blogID int64, conn *websocket.Conn) {
	s := &subscriber{
		blogID: blogID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}

	h.register(s)

	go h.writePump(s)
	h.readPump(s)
}

// readPump drains the client side. The feed is server-to-client only, so
// incoming frames matter only for pong bookkeeping and close detection.
func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMsgSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) SubscriberCount(blogID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.rooms[blogID])
}

// Close drops every subscriber. Each readPump unregisters its own
// subscriber when the closed socket fails the next read.
func (h *Hub) Close() {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, room := range h.rooms {
		for s := range room {
			_ = s.conn.Close()
		}
	}
}
