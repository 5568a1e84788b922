package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	jwtsvc "unidomus/internal/pkg/jwt"
)

func protectedRouter(jwt *jwtsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(jwt))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetInt64("user_id"),
			"is_admin": c.GetBool("is_admin"),
		})
	})
	return router
}

func TestAuth_ValidToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(42, false)

	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestAuth_MissingHeader(t *testing.T) {
	router := protectedRouter(jwtsvc.New("test-secret-123", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_WrongSecret(t *testing.T) {
	issuer := jwtsvc.New("issuer-secret", time.Hour)
	token, _ := issuer.GenerateToken(42, false)

	router := protectedRouter(jwtsvc.New("other-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := protectedRouter(jwtsvc.New("test-secret-123", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalAuth(jwtsvc.New("test-secret-123", time.Hour)))
	router.GET("/listings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"is_admin": c.GetBool("is_admin")})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/listings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")
}

func TestOptionalAuth_AdminTokenRecognized(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(1, true)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalAuth(jwtService))
	router.GET("/listings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"is_admin": c.GetBool("is_admin")})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/listings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}

func TestAdminOnly_RejectsNonAdmin(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(42, false)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(jwtService), AdminOnly())
	router.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(1, true)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(jwtService), AdminOnly())
	router.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
