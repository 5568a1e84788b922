package match

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the match endpoints; the group is expected to carry
// the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/matches", h.Create)
	rg.GET("/matches/user/:id", h.ForUser)
	rg.GET("/matches/received/:id", h.Received)
	rg.GET("/matches/sent/:id", h.Sent)
	rg.PUT("/matches/status/:id", h.UpdateStatus)
	rg.POST("/matches/:id/messages", h.SendMessage)
	rg.GET("/matches/:id/messages", h.Messages)
	rg.GET("/matches/:id", h.Get)
	rg.DELETE("/matches/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	requesterID := c.GetInt64("user_id")
	m, err := h.service.Create(c.Request.Context(), requesterID, req.ReceiverID, req.MatchType)
	if err != nil {
		switch err {
		case ErrInvalidType:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid match type")
		case ErrSelfMatch:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot match with yourself")
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case ErrDuplicateMatch:
			response.Error(c, http.StatusConflict, "DUPLICATE_MATCH", "A pending match already exists for this pair")
		default:
			response.Error(c, http.StatusInternalServerError, "MATCH_CREATE_FAILED", "Failed to create match")
		}
		return
	}

	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	actorID := c.GetInt64("user_id")
	m, err := h.service.UpdateStatus(c.Request.Context(), id, actorID, req.Status)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid match status")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Match not found")
		case ErrNotParticipant, ErrOnlyReceiver:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "MATCH_UPDATE_FAILED", "Failed to update match")
		}
		return
	}

	response.Success(c, http.StatusOK, m)
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	authorID := c.GetInt64("user_id")
	msg, err := h.service.SendMessage(c.Request.Context(), id, authorID, req.Text)
	if err != nil {
		switch err {
		case ErrEmptyMessage, ErrMessageTooLong:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case ErrNotFound, ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case ErrNotParticipant:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "MESSAGE_SEND_FAILED", "Failed to send message")
		}
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) Messages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actorID := c.GetInt64("user_id")
	msgs, err := h.service.Messages(c.Request.Context(), id, actorID)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Match not found")
		case ErrNotParticipant:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "MESSAGE_LIST_FAILED", "Failed to list messages")
		}
		return
	}

	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Match not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "MATCH_GET_FAILED", "Failed to load match")
		return
	}

	response.Success(c, http.StatusOK, m)
}

func (h *Handler) ForUser(c *gin.Context)  { h.listFor(c, h.service.ForUser) }
func (h *Handler) Received(c *gin.Context) { h.listFor(c, h.service.Received) }
func (h *Handler) Sent(c *gin.Context)     { h.listFor(c, h.service.Sent) }

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actorID := c.GetInt64("user_id")
	if err := h.service.Delete(c.Request.Context(), id, actorID); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Match not found")
		case ErrNotParticipant:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "MATCH_DELETE_FAILED", "Failed to delete match")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": 1})
}

func (h *Handler) listFor(c *gin.Context, fn func(ctx context.Context, userID int64) ([]domain.Match, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	matches, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "MATCH_LIST_FAILED", "Failed to list matches")
		return
	}

	response.Success(c, http.StatusOK, matches)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
