package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsnap/eventsnap-service/config"
	"github.com/eventsnap/eventsnap-service/utils"
)

// APIKeyMiddleware checks the shared anonymous API key. There is no per-user
// authentication; participants are anonymous and identified only by the
// client-generated userId in request bodies.
func APIKeyMiddleware(config *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Auth.PublicAPIKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "API key is not configured"})
			c.Abort()
			return
		}

		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			c.Abort()
			return
		}

		if !utils.SecureCompare(tokenStr, config.Auth.PublicAPIKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
