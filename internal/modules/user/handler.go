package user

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

// RegisterRoutes mounts the profile endpoints; the group carries auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/tags", h.Tags)
	rg.GET("/users/housingseekers", h.HousingSeekers)
	rg.GET("/users/:id", h.Get)
	rg.PUT("/users/:id", h.Update)
}

func (h *Handler) Tags(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"habits":  HabitTags,
		"hobbies": HobbyTags,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "USER_GET_FAILED", "Failed to load user")
		return
	}

	// Owners and admins see the full record; everyone else the projection.
	if c.GetInt64("user_id") == id || c.GetBool("is_admin") {
		response.Success(c, http.StatusOK, u)
		return
	}
	response.Success(c, http.StatusOK, toPublicProfile(u))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, violations, err := h.service.UpdateProfile(c.Request.Context(), id, c.GetInt64("user_id"), c.GetBool("is_admin"), req)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot edit another user's profile")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user")
		}
		return
	}
	if len(violations) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile payload", violations)
		return
	}

	response.Success(c, http.StatusOK, u)
}

func (h *Handler) HousingSeekers(c *gin.Context) {
	users, err := h.service.HousingSeekers(c.Request.Context(), c.GetBool("is_admin"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "USER_LIST_FAILED", "Failed to list housing seekers")
		return
	}

	profiles := make([]PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, toPublicProfile(&users[i]))
	}
	response.Success(c, http.StatusOK, profiles)
}
