package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/constants"
	"github.com/solo-platform/community-api/internal/database"
	apierrors "github.com/solo-platform/community-api/internal/errors"
	"github.com/solo-platform/community-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// CurrentUser loads the authenticated user record. Returns nil if the
// request is unauthenticated or the user no longer exists.
func CurrentUser(c *gin.Context) *models.User {
	userID, exists := GetUserID(c)
	if !exists {
		return nil
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}

// RequireStaff allows only staff accounts through. Must run after
// RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !user.IsStaff {
			apierrors.Forbidden(c, "Staff account required")
			c.Abort()
			return
		}
		c.Next()
	}
}
