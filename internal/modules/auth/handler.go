package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unidomus/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/registration", h.Register)
	rg.POST("/users/authentication", h.Login)
	rg.POST("/users/auth/google", h.GoogleLogin)
	rg.GET("/users/confirm/:token", h.ConfirmEmail)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, violations, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
		case ErrUsernameAlreadyExists:
			response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "Username already taken")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}
	if len(violations) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration payload", violations)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": result.User,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	token, user, err := h.service.Authenticate(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email/username or password")
		case ErrAccountNotActive:
			response.Error(c, http.StatusForbidden, "ACCOUNT_NOT_ACTIVE", "Account must be activated via the emailed link")
		case ErrAccountBanned:
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "Account is banned")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to authenticate")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	token, user, err := h.service.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		switch err {
		case ErrInvalidGoogleToken:
			response.Error(c, http.StatusUnauthorized, "INVALID_GOOGLE_TOKEN", "Google token is invalid")
		case ErrAccountBanned:
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "Account is banned")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to authenticate with Google")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.service.ConfirmEmail(c.Request.Context(), token); err != nil {
		if err == ErrInvalidVerifyToken {
			response.Error(c, http.StatusBadRequest, "INVALID_TOKEN", "Verification token is invalid or expired")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CONFIRMATION_FAILED", "Failed to confirm email")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "activated"})
}
