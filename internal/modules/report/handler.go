package report

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unidomus/internal/domain"
	"unidomus/internal/pkg/response"
	"unidomus/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the report endpoints. Creation is open to any
// authenticated user; everything else is moderation surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.POST("/reports", h.Create)

	rg.GET("/reports", adminOnly, h.ListPending)
	rg.GET("/reports/all", adminOnly, h.ListAll)
	rg.GET("/reports/resolved", adminOnly, h.ListResolved)
	rg.GET("/reports/reviewing", adminOnly, h.ListReviewing)
	rg.GET("/reports/reviewing/:adminID", adminOnly, h.ListReviewingFor)
	rg.GET("/reports/reporter/:id", adminOnly, h.ListByReporter)
	rg.GET("/reports/target/:id", adminOnly, h.ListByTarget)
	rg.GET("/reports/:id", adminOnly, h.Get)
	rg.PUT("/reports/review/:id", adminOnly, h.Claim)
	rg.PUT("/reports/resolve/:id", adminOnly, h.Resolve)
	rg.PUT("/reports/remove/:id", adminOnly, h.Remove)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	reporterID := c.GetInt64("user_id")
	r, err := h.service.Create(c.Request.Context(), reporterID, req.ReportType, req.TargetID, req.Description, req.MessageIndex)
	if err != nil {
		switch err {
		case ErrInvalidType, ErrInvalidIndex, ErrMissingIndex, ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case ErrReporterNotFound, ErrTargetNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "REPORT_CREATE_FAILED", "Failed to create report")
		}
		return
	}

	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) Claim(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviewerID := c.GetInt64("user_id")
	r, err := h.service.ClaimForReview(c.Request.Context(), id, reviewerID)
	h.writeMutation(c, r, err)
}

func (h *Handler) Resolve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.Resolve(c.Request.Context(), id)
	h.writeMutation(c, r, err)
}

func (h *Handler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.Remove(c.Request.Context(), id)
	h.writeMutation(c, r, err)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REPORT_GET_FAILED", "Failed to load report")
		return
	}

	response.Success(c, http.StatusOK, r)
}

func (h *Handler) ListPending(c *gin.Context) {
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.Pending(ctx, p)
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.All(ctx, p)
	})
}

func (h *Handler) ListResolved(c *gin.Context) {
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.Resolved(ctx, p)
	})
}

func (h *Handler) ListReviewing(c *gin.Context) {
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.Reviewing(ctx, nil, p)
	})
}

func (h *Handler) ListReviewingFor(c *gin.Context) {
	adminID, ok := pathID(c, "adminID")
	if !ok {
		return
	}
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.Reviewing(ctx, &adminID, p)
	})
}

func (h *Handler) ListByReporter(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.ByReporter(ctx, id, p)
	})
}

func (h *Handler) ListByTarget(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, func(ctx context.Context, p repository.Page) ([]domain.Report, error) {
		return h.service.ByTarget(ctx, id, p)
	})
}

func (h *Handler) list(c *gin.Context, fn func(ctx context.Context, p repository.Page) ([]domain.Report, error)) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reports, err := fn(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_LIST_FAILED", "Failed to list reports")
		return
	}

	response.Success(c, http.StatusOK, reports)
}

func (h *Handler) writeMutation(c *gin.Context, r *domain.Report, err error) {
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REPORT_UPDATE_FAILED", "Failed to update report")
		return
	}
	response.Success(c, http.StatusOK, r)
}

func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
