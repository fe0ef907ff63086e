package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminTokenAuth охраняет административные операции общим секретом.
// Токен передаётся в заголовке X-Admin-Token или как bearer.
// Пустой секрет оставляет шлюз открытым (режим разработки).
func AdminTokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		if provided == "" {
			h := c.GetHeader("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				provided = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}

		if provided != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}

		c.Next()
	}
}
