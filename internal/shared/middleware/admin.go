package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
)

// RoleAdmin is the only role allowed through AdminMiddleware.
const RoleAdmin = "ADMIN"

// AdminMiddleware checks if user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get role from context (set by AuthMiddleware)
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if role != RoleAdmin {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
