// internal/handlers/auth/auth_handler.go
package auth

import (
	"context"
	"net/http"

	"tourdesk-service/internal/domain/auth"
	"tourdesk-service/internal/middleware"
	"tourdesk-service/internal/pkg/jwt"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHome is where a logged-in user is sent.
const AdminHome = "/admin/"

// Service is the auth gateway used by the handler.
type Service interface {
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID int64) (*auth.UserWithProfile, error)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type AuthHandler struct {
	authService Service
	cookie      CookieConfig
	logger      *zap.Logger
}

func NewAuthHandler(authService Service, cookie CookieConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// ========== Login ==========

// Login accepts a JSON body or a form post. Must be mounted behind OptionalAuth
// so an existing session is answered with the redirect target.
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		response.Redirect(c, "Already logged in", AdminHome)
		return
	}

	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid login request", err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("username", req.Username),
			zap.String("ip", req.IPAddress),
			zap.Error(err),
		)
		response.FromError(c, "invalid username or password", err)
		return
	}

	// A zero MaxAge leaves the cookie without Max-Age, so it ends with the browser.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, int(result.MaxAge.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)

	response.Redirect(c, "Login successful!", AdminHome)
}

// ========== Logout ==========

// Logout ends the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.logger.Error("logout failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		response.FromError(c, "logout failed", err)
		return
	}

	h.clearCookie(c)
	response.Success(c, http.StatusOK, "logged out", nil)
}

// ========== Me ==========

// GetMe returns the current user with profile, role and display name.
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	me, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to load current user", err)
		return
	}

	response.Success(c, http.StatusOK, "current user", me)
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}
