package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"selectiq/internal/apperr"
	"selectiq/internal/core/auth"
	"selectiq/internal/domain"
	"selectiq/internal/transport/http/middleware"
	resp "selectiq/internal/transport/http/response"
)

type AuthHandler struct {
	identity *auth.Identity
	users    domain.UserRepository
	jwter    *auth.JWTer
	sessions auth.SessionStore
	log      *zap.Logger
}

func NewAuthHandler(identity *auth.Identity, users domain.UserRepository, jwter *auth.JWTer, sessions auth.SessionStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, users: users, jwter: jwter, sessions: sessions, log: log}
}

var errInvalidCredentials = &apperr.Error{Kind: apperr.KindUnauthorized, Msg: "invalid email or password"}

func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		resp.WriteError(c, apperr.Validation("email", "password"))
		return
	}

	u, err := h.identity.VerifyCredentials(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			resp.WriteError(c, errInvalidCredentials)
		} else {
			resp.WriteError(c, err)
		}
		return
	}

	sid := uuid.NewString()
	if err := h.sessions.Put(c.Request.Context(), sid, u.ID, h.jwter.TTL); err != nil {
		resp.WriteError(c, apperr.Internal("create session", err))
		return
	}
	token, err := h.jwter.Issue(u.ID, sid)
	if err != nil {
		resp.WriteError(c, apperr.Internal("issue token", err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.jwter.TTL/time.Second), "/", "", false, true)
	h.log.Info("login", zap.Uint("user_id", u.ID))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    u,
	})
}

// Logout revokes the server-side session. Always 200: a stale or missing
// token has nothing left to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := h.sessionID(c); ok {
		_ = h.sessions.Delete(c.Request.Context(), sid)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	uid, live, err := h.sessions.Get(c.Request.Context(), claims.SID)
	if err != nil || !live || uid != claims.UID {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	u, err := h.users.FindByID(c.Request.Context(), claims.UID)
	if err != nil || u == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": u})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.NewPassword == "" {
		resp.WriteError(c, apperr.Validation("email", "newPassword"))
		return
	}
	if err := h.identity.ResetPassword(c.Request.Context(), in.Email, in.NewPassword); err != nil {
		resp.WriteError(c, err)
		return
	}
	h.log.Info("password reset", zap.String("email", in.Email))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

func (h *AuthHandler) claims(c *gin.Context) (*auth.Claims, bool) {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie == "" {
		return nil, false
	}
	claims, err := h.jwter.Parse(cookie)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (h *AuthHandler) sessionID(c *gin.Context) (string, bool) {
	if claims, ok := h.claims(c); ok {
		return claims.SID, true
	}
	return "", false
}
