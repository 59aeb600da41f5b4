package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "selectiq/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests to protect the embedded store,
// which serializes writers.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c, 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.ErrorBody{
				Error: "server busy", Kind: "server_busy",
			})
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
