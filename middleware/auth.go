package middleware

import (
	"MindWellGo/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where the authenticated user id is stored on gin.Context
const ContextUserIDKey = "uid"

// AuthMiddleware requires a valid bearer token and stores its user id
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
