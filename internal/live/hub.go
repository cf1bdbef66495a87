package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/lingo-app/backend/internal/models"
)

// Message is the wire envelope pushed to subscribers.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const MsgProfile = "profile"

type subscriber struct {
	conn   *websocket.Conn
	send   chan []byte
	closed bool
	mu     sync.Mutex
}

func newSubscriber(conn *websocket.Conn) *subscriber {
	s := &subscriber{
		conn: conn,
		send: make(chan []byte, 16),
	}
	go s.writePump()
	return s
}

func (s *subscriber) writePump() {
	defer s.conn.Close()
	for msg := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// deliver enqueues a message unless the subscriber was torn down. The closed
// flag is the liveness guard: nothing is applied after teardown.
func (s *subscriber) deliver(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// Hub fans committed profile documents out to each user's live subscribers.
// Every push carries the full current document, so a subscriber that missed
// an update converges on the next one.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[*subscriber]bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[*subscriber]bool)}
}

func (h *Hub) AddSubscriber(userID int64, conn *websocket.Conn) *subscriber {
	s := newSubscriber(conn)
	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscriber]bool)
	}
	h.subs[userID][s] = true
	h.mu.Unlock()
	return s
}

func (h *Hub) RemoveSubscriber(userID int64, s *subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[userID]; ok {
		if set[s] {
			delete(set, s)
			s.close()
		}
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
	h.mu.Unlock()
}

// PublishProfile pushes the full profile document to the user's subscribers.
// Slow clients are disconnected rather than blocking the write path.
func (h *Hub) PublishProfile(userID int64, profile *models.UserProfile) {
	data, err := json.Marshal(Message{Type: MsgProfile, Payload: profile})
	if err != nil {
		log.Printf("[live] marshal profile: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs[userID]))
	for s := range h.subs[userID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if !s.deliver(data) {
			log.Printf("[live] subscriber too slow, disconnecting (user %d)", userID)
			h.RemoveSubscriber(userID, s)
		}
	}
}

// SubscriberCount reports active subscriptions for a user.
func (h *Hub) SubscriberCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
