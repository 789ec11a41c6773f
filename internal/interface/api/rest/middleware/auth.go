package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"file-manager-api/internal/infrastructure/jwt"
)

const CtxUserID = "userID"

// OptionalAuth resolves the uploader identity when a valid bearer token is
// present. Anonymous requests pass through untouched, their files simply
// carry no owner.
func OptionalAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxUserID, claims.UserID)

		c.Next()
	}
}
