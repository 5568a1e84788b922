package listing

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unidomus/internal/modules/moderation"
	"unidomus/internal/pkg/response"
	"unidomus/internal/repository"
)

type Handler struct {
	service    *Service
	moderation *moderation.Service
}

func NewHandler(service *Service, moderationSvc *moderation.Service) *Handler {
	return &Handler{service: service, moderation: moderationSvc}
}

// RegisterPublicRoutes mounts the read surface; these run behind optional
// auth so admins see banned listings and everyone else does not.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.List)
	rg.GET("/listings/coordinates", h.Coordinates)
	rg.GET("/listings/coordinates/:id", h.CoordinatesFor)
	rg.GET("/listings/:id", h.Get)
}

// RegisterProtectedRoutes mounts the write surface behind auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.POST("/listings", h.Create)
	rg.PUT("/listings/:id", h.Update)
	rg.DELETE("/listings/:id", adminOnly, h.Delete)
	rg.PUT("/listings/:id/ban", adminOnly, h.Ban)
	rg.DELETE("/listings/:id/ban", adminOnly, h.Unban)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	publisherID := c.GetInt64("user_id")
	l, violations, err := h.service.Create(c.Request.Context(), publisherID, req)
	if err != nil {
		switch err {
		case ErrPublisherNotFound, ErrTenantNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case ErrAlreadyPublishing:
			response.Error(c, http.StatusConflict, "ALREADY_PUBLISHING", "User already publishes a listing")
		default:
			response.Error(c, http.StatusInternalServerError, "LISTING_CREATE_FAILED", "Failed to create listing")
		}
		return
	}
	if len(violations) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing payload", violations)
		return
	}

	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LISTING_GET_FAILED", "Failed to load listing")
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	listings, err := h.service.List(c.Request.Context(), repository.ListingFilter{
		City:     q.City,
		Typology: q.Typology,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		AreaMin:  q.AreaMin,
		AreaMax:  q.AreaMax,
	}, c.GetBool("is_admin"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LISTING_LIST_FAILED", "Failed to list listings")
		return
	}

	response.Success(c, http.StatusOK, listings)
}

func (h *Handler) Coordinates(c *gin.Context) {
	coords, err := h.service.Coordinates(c.Request.Context(), c.GetBool("is_admin"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LISTING_LIST_FAILED", "Failed to load coordinates")
		return
	}
	response.Success(c, http.StatusOK, coords)
}

func (h *Handler) CoordinatesFor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	coords, err := h.service.CoordinatesFor(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LISTING_GET_FAILED", "Failed to load coordinates")
		return
	}
	response.Success(c, http.StatusOK, coords)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	l, violations, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), c.GetBool("is_admin"), req)
	if err != nil {
		switch err {
		case ErrNotFound, ErrTenantNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case ErrNotPublisher:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the publisher can edit this listing")
		default:
			response.Error(c, http.StatusInternalServerError, "LISTING_UPDATE_FAILED", "Failed to update listing")
		}
		return
	}
	if len(violations) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing payload", violations)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LISTING_DELETE_FAILED", "Failed to delete listing")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": 1})
}

func (h *Handler) Ban(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ban, err := h.moderation.ApplyBan(c.Request.Context(), moderation.TargetListing, id, moderation.BanParams{
		Permanent:       req.Permanent,
		DurationSeconds: req.DurationSeconds,
		Message:         req.Message,
	})
	if err != nil {
		switch err {
		case moderation.ErrInvalidBan:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Ban duration must be positive or the ban permanent")
		case moderation.ErrTargetNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
		default:
			response.Error(c, http.StatusInternalServerError, "BAN_FAILED", "Failed to apply ban")
		}
		return
	}

	response.Success(c, http.StatusOK, ban)
}

func (h *Handler) Unban(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.moderation.LiftBan(c.Request.Context(), moderation.TargetListing, id); err != nil {
		if err == moderation.ErrTargetNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UNBAN_FAILED", "Failed to lift ban")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "unbanned"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return 0, false
	}
	return id, true
}
