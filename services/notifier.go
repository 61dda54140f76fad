// services/notifier.go - Live notification hub over WebSocket
package services

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// NotificationEvent is the wire format pushed to connected clients.
type NotificationEvent struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Stars   int    `json:"stars,omitempty"`
	Level   int    `json:"level,omitempty"`
	Icon    string `json:"icon,omitempty"`
}

// Hub tracks open WebSocket connections per user and implements the
// Notifier contract. Pushes are fire-and-forget: a failed write drops
// the connection and is never reported to callers.
type Hub struct {
	mu    sync.Mutex
	conns map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[uint]map[*websocket.Conn]bool)}
}

// Register adds a connection for a user.
func (h *Hub) Register(userID uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][c] = true
}

// Unregister removes a connection for a user.
func (h *Hub) Unregister(userID uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

func (h *Hub) push(userID uint, event NotificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns[userID] {
		if err := c.WriteJSON(event); err != nil {
			log.Printf("Dropping dead notification connection for user %d: %v", userID, err)
			c.Close()
			delete(h.conns[userID], c)
		}
	}
}

// AchievementEarned notifies the user of a freshly unlocked
// achievement and its star reward.
func (h *Hub) AchievementEarned(userID uint, def AchievementDefinition) {
	h.push(userID, NotificationEvent{
		Type:    "achievement_earned",
		Title:   def.Name,
		Message: def.Description,
		Stars:   def.RewardStars,
		Icon:    def.Icon,
	})
}

// LeveledUp notifies the user of a new level and its title.
func (h *Hub) LeveledUp(userID uint, level int, title string) {
	h.push(userID, NotificationEvent{
		Type:    "level_up",
		Title:   title,
		Message: "You reached a new level!",
		Level:   level,
	})
}
