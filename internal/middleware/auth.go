package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agentcrm/internal/pkg/jwt"
)

// ContextAgentID — ключ, под которым идентификатор агента лежит в gin.Context.
const ContextAgentID = "agent_id"

// JWTAuth проверяет bearer-токен и кладёт идентификатор агента в контекст запроса.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextAgentID, claims.AgentID)

		c.Next()
	}
}
