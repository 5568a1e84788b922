package chat

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/response"
)

// MatchLister supplies the matches a user participates in, used to
// auto-subscribe fresh connections to their rooms.
type MatchLister interface {
	ForUser(ctx context.Context, userID int64) ([]domain.Match, error)
}

// MessageSender persists and fans out a chat message. Implemented by the
// match service, which re-validates membership and broadcasts back through
// the hub.
type MessageSender interface {
	SendMessage(ctx context.Context, matchID, authorID int64, text string) (*domain.MatchMessage, error)
}

type Handler struct {
	hub     *Hub
	matches MatchLister
	sender  MessageSender
}

func NewHandler(hub *Hub, matches MatchLister, sender MessageSender) *Handler {
	h := &Handler{hub: hub, matches: matches, sender: sender}
	hub.SetInboundHandler(h)
	return h
}

// RegisterRoutes must be mounted behind JWT auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.ServeWS)
}

// HandleInbound is called by the hub's read loop for client-sent messages.
func (h *Handler) HandleInbound(userID, matchID int64, text string) error {
	_, err := h.sender.SendMessage(context.Background(), matchID, userID, text)
	return err
}

func (h *Handler) ServeWS(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	matches, err := h.matches.ForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to load matches")
		return
	}
	rooms := make([]int64, 0, len(matches))
	for i := range matches {
		rooms = append(rooms, matches[i].ID)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat: websocket upgrade failed user=%d error=%q", userID, err.Error())
		return
	}

	h.hub.ServeWS(conn, userID, rooms)
}
