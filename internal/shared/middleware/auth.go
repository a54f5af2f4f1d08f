package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextName   = "name"
	ContextRole   = "role"
)

// TokenValidator resolves a bearer token to an identity.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Identity, error)
}

// AuthMiddleware validates the bearer token and stores the session identity in the context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		// 2. "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify
		identity, err := validator.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("rejected bearer token", map[string]interface{}{
				"request_id": c.GetString(ContextRequestID),
				"error":      err.Error(),
			})
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, identity.ID)
		c.Set(ContextEmail, identity.Email)
		c.Set(ContextName, identity.Name)
		c.Set(ContextRole, identity.Role)

		c.Next()
	}
}

// CurrentUser returns the identity stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (jwt.Identity, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return jwt.Identity{}, false
	}
	return jwt.Identity{
		ID:    id,
		Email: c.GetString(ContextEmail),
		Name:  c.GetString(ContextName),
		Role:  c.GetString(ContextRole),
	}, true
}
