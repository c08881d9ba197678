package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pulsefit/internal/shared/utils"
)

// CronSecret guards machine-to-machine endpoints with a pre-shared bearer
// secret. An empty configured secret disables the routes entirely rather than
// leaving them open.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "cron endpoint disabled")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" ||
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid cron secret")
			c.Abort()
			return
		}

		c.Next()
	}
}
