package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"selectiq/internal/core/auth"
	resp "selectiq/internal/transport/http/response"
)

// SessionCookie is the session-token cookie the login endpoint sets.
const SessionCookie = "selectiq_session"

// Context keys the auth middleware injects.
const (
	KeyUserID    = "userId"
	KeySessionID = "sessionId"
)

// AuthSession authenticates via the session cookie (Authorization: Bearer
// accepted as a fallback for non-browser clients). The token is a JWT whose
// session id must still exist in the store, so logout revokes access
// immediately.
func AuthSession(j *auth.JWTer, sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			resp.Unauthorized(c, "missing session token")
			return
		}
		claims, err := j.Parse(token)
		if err != nil {
			resp.Unauthorized(c, "invalid session token")
			return
		}
		uid, ok, err := sessions.Get(c.Request.Context(), claims.SID)
		if err != nil || !ok || uid != claims.UID {
			resp.Unauthorized(c, "session expired")
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeySessionID, claims.SID)
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	return ""
}
