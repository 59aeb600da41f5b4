package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "selectiq/internal/transport/http/response"
)

// MaxBodyBytes caps request body size; CV URLs and comments are the largest
// payloads and they are small.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.ErrorBody{
				Error: "request body too large", Kind: "validation_error",
			})
		}
	}
}
