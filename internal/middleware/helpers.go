// internal/middleware/helpers.go
package middleware

import (
	"tourdesk-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxClaims      = "claims"
	ctxUserID      = "user_id"
	ctxUsername    = "username"
	ctxJTI         = "jti"
	ctxRole        = "role"
	ctxIsStaff     = "is_staff"
	ctxIsSuperuser = "is_superuser"
)

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxClaims, claims)
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxJTI, claims.ID)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxIsStaff, claims.IsStaff || claims.IsSuperuser)
	c.Set(ctxIsSuperuser, claims.IsSuperuser)
}

// GetClaims returns the validated token claims.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetUserID gets the user ID from context or panics
func MustGetUserID(c *gin.Context) int64 {
	id, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return id
}

// GetRole gets the display role from context
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get(ctxUserID)
	return exists
}

// IsStaff checks if the session belongs to a staff account. Superusers count
// as staff.
func IsStaff(c *gin.Context) bool {
	return c.GetBool(ctxIsStaff)
}

// IsSuperuser checks if the session belongs to a superuser
func IsSuperuser(c *gin.Context) bool {
	return c.GetBool(ctxIsSuperuser)
}
