package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unidomus/internal/pkg/response"
	"unidomus/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the notification endpoints; the group is expected to
// carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.POST("/notifications", adminOnly, h.Create)
	rg.GET("/notifications", h.List)
	rg.PUT("/notifications/seen", h.MarkAllSeen)
	rg.DELETE("/notifications/:id", h.Delete)
	rg.DELETE("/notifications", h.DeleteByFilter)
}

// Create lets an administrator push an arbitrary alert to a user.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	n, err := h.service.Notify(c.Request.Context(), req.UserID, req.Type, req.Message, req.Link, req.Priority)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification payload")
			return
		}
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_CREATE_FAILED", "Failed to create notification")
		return
	}

	response.Success(c, http.StatusCreated, n)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, unseen, err := h.service.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_LIST_FAILED", "Failed to list notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unseen":        unseen,
	})
}

func (h *Handler) MarkAllSeen(c *gin.Context) {
	userID := c.GetInt64("user_id")

	updated, err := h.service.MarkAllSeen(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_UPDATE_FAILED", "Failed to mark notifications as seen")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_DELETE_FAILED", "Failed to delete notification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": 1})
}

func (h *Handler) DeleteByFilter(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req DeleteFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	deleted, err := h.service.DeleteByFilter(c.Request.Context(), repository.NotificationFilter{
		UserID:   userID,
		Type:     req.Type,
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter")
			return
		}
		response.Error(c, http.StatusInternalServerError, "NOTIFICATION_DELETE_FAILED", "Failed to delete notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
