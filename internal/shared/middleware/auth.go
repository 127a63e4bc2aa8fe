package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token on author routes.
// Token issuance is the auth collaborator's job; this only verifies
// the signature and extracts the owner id.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		// 3. Verify and parse
		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// 4. Owner id must be a UUID
		ownerID, err := uuid.Parse(claims.OwnerID)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid owner ID in token"})
			c.Abort()
			return
		}

		c.Set("ownerID", ownerID)
		c.Next()
	}
}

// GetOwnerID reads the authenticated owner id set by AuthMiddleware
func GetOwnerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("ownerID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
