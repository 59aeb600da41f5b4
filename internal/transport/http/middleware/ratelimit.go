package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "selectiq/internal/transport/http/response"
)

// RateLimit is a global token bucket in front of the whole API.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.ErrorBody{
			Error: "too many requests", Kind: "rate_limited",
		})
	}
}
