// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"tourdesk-service/internal/pkg/jwt"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenValidator checks a session token and returns its claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	authService TokenValidator
	cookieName  string
}

func NewAuthMiddleware(authService TokenValidator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		cookieName:  cookieName,
	}
}

// Auth requires a valid session, taken from the Authorization header or the
// session cookie.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired session", err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the session context when a valid token is present and
// never aborts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireStaff admits staff and superusers only. Must be used after Auth().
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		if !IsStaff(c) {
			response.Error(c, http.StatusForbidden, "staff access required", nil)
			return
		}
		c.Next()
	}
}

// StaffOnly returns the Auth + RequireStaff chain.
func (m *AuthMiddleware) StaffOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireStaff(),
	}
}

// RequireSuperuser must be used after Auth().
func (m *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		if !IsSuperuser(c) {
			response.Error(c, http.StatusForbidden, "superuser access required", nil)
			return
		}
		c.Next()
	}
}

// SuperuserOnly returns the Auth + RequireSuperuser chain.
func (m *AuthMiddleware) SuperuserOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireSuperuser(),
	}
}

// extractToken prefers a Bearer header and falls back to the session cookie.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if m.cookieName != "" {
		if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
			return token
		}
	}

	return ""
}
