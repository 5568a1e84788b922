package moderation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unidomus/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type banRequest struct {
	Permanent       bool   `json:"banPermanently"`
	DurationSeconds int64  `json:"durationSeconds"`
	Message         string `json:"banMsg"`
}

// RegisterRoutes mounts the user-ban surface; listing bans live under the
// listing handler. The group must be admin-gated.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/users/:id/ban", h.BanUser)
	rg.DELETE("/users/:id/ban", h.UnbanUser)
}

func (h *Handler) BanUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ban, err := h.service.ApplyBan(c.Request.Context(), TargetUser, id, BanParams{
		Permanent:       req.Permanent,
		DurationSeconds: req.DurationSeconds,
		Message:         req.Message,
	})
	if err != nil {
		switch err {
		case ErrInvalidBan:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Ban duration must be positive or the ban permanent")
		case ErrTargetNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "BAN_FAILED", "Failed to apply ban")
		}
		return
	}

	response.Success(c, http.StatusOK, ban)
}

func (h *Handler) UnbanUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.LiftBan(c.Request.Context(), TargetUser, id); err != nil {
		if err == ErrTargetNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UNBAN_FAILED", "Failed to lift ban")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "unbanned"})
}
