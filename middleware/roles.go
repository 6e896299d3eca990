package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JEYMISPAUL/master-delivery/models"
)

// RequireRoles guards a route group: the authenticated principal must
// hold one of the listed roles. Runs after ValidateToken.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Allowed(CurrentUser(c).Role, roles...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Allowed reports whether role is one of the permitted roles.
func Allowed(role models.Role, permitted ...models.Role) bool {
	for _, r := range permitted {
		if role == r {
			return true
		}
	}
	return false
}
