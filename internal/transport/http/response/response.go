// Package response maps boundary error kinds to HTTP statuses and writes
// the structured error payload every endpoint shares.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selectiq/internal/apperr"
)

// ErrorBody names the error kind and, for validation failures, the
// offending fields. Raw storage errors never appear here.
type ErrorBody struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind"`
	Fields []string `json:"fields,omitempty"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindIndex, apperr.KindInvalidTransition:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindStorageBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err with its mapped status. Internal causes are not
// exposed; the access log carries them.
func WriteError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	body := ErrorBody{Kind: string(kind), Fields: apperr.FieldsOf(err)}
	if kind == apperr.KindInternal {
		body.Error = "internal server error"
		_ = c.Error(err)
	} else {
		body.Error = err.Error()
	}
	c.JSON(statusFor(kind), body)
}

// Unauthorized is the middleware short-circuit body.
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{
		Error: msg, Kind: string(apperr.KindUnauthorized),
	})
}
