package live

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/lingo-app/backend/internal/models"
)

// SnapshotFunc fetches the current profile document for the initial push on
// connect.
type SnapshotFunc func(userID int64) (*models.UserProfile, error)

type Handler struct {
	hub      *Hub
	snapshot SnapshotFunc
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, snapshot SnapshotFunc, allowedOrigins []string) *Handler {
	allowAll := false
	allowed := make(map[string]bool)
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return &Handler{
		hub:      hub,
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
	}
}

// Subscribe upgrades to a websocket and streams the caller's profile
// document. The subscription is torn down when the client disconnects.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed: %v", err)
		return
	}

	sub := h.hub.AddSubscriber(userID, conn)
	log.Printf("[live] subscriber connected (user %d)", userID)

	// Initial full-document push so the client renders immediately.
	if profile, err := h.snapshot(userID); err == nil {
		h.hub.PublishProfile(userID, profile)
	}

	go func() {
		defer func() {
			h.hub.RemoveSubscriber(userID, sub)
			log.Printf("[live] subscriber disconnected (user %d)", userID)
		}()
		for {
			// Clients send nothing meaningful; reads only detect close.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
