package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cardfolio/internal/logger"
)

// RateLimit returns a Gin middleware enforcing a global request rate with
// the given sustained rate and burst. Requests over the limit get 429.
func RateLimit(every rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(every, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			logger.Get().Warnw("rate limit exceeded", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": http.StatusText(http.StatusTooManyRequests),
				},
			})
			return
		}
		c.Next()
	}
}
