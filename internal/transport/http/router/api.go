package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"selectiq/internal/core/auth"
	"selectiq/internal/core/database"
	"selectiq/internal/pipeline"
	"selectiq/internal/repo"
	"selectiq/internal/transport/http/handler"
	mdw "selectiq/internal/transport/http/middleware"
)

// NewAPIEngine wires repositories, the pipeline manager and the handlers
// into one engine. Everything storage-bound goes through gw.
func NewAPIEngine(l *zap.Logger, gw *database.Gateway, jwter *auth.JWTer, sessions auth.SessionStore) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(15*time.Second),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	offers := repo.NewOfferRepo(gw)
	apps := repo.NewApplicationRepo(gw)
	candidates := repo.NewCandidateRepo(gw)
	interviews := repo.NewInterviewRepo(gw, l)
	users := repo.NewUserRepo(gw)

	identity := auth.NewIdentity(users)
	manager := pipeline.NewManager(apps, candidates, interviews, l)
	stats := pipeline.NewStats(offers, apps)

	authH := handler.NewAuthHandler(identity, users, jwter, sessions, l)
	offerH := handler.NewOfferHandler(offers, l)
	appH := handler.NewApplicationHandler(apps, manager, l)
	candH := handler.NewCandidateHandler(candidates, manager, l)
	ivH := handler.NewInterviewHandler(interviews, manager, l)
	dashH := handler.NewDashboardHandler(stats)

	api := r.Group("/api")

	// Public surface: login flow, the careers page and the submission paths.
	api.POST("/login", authH.Login)
	api.POST("/logout", authH.Logout)
	api.GET("/check-auth", authH.CheckAuth)
	api.POST("/reset-password", authH.ResetPassword)

	api.GET("/job-offers", offerH.List)
	api.GET("/applications", appH.List)
	api.POST("/applications", appH.Create)
	api.POST("/candidates", candH.Create)
	api.POST("/forms/google-callback", appH.FormCallback)

	// Recruiter surface behind the session cookie.
	priv := api.Group("")
	priv.Use(mdw.AuthSession(jwter, sessions))

	priv.POST("/job-offers", offerH.Create)
	priv.PUT("/job-offers/:id", offerH.Update)
	priv.DELETE("/job-offers/:id", offerH.Delete)

	priv.PUT("/applications/:id", appH.Update)
	priv.DELETE("/applications/:id", appH.Delete)

	priv.GET("/candidates", candH.List)

	priv.GET("/interviews", ivH.List)
	priv.POST("/interviews", ivH.Create)
	priv.GET("/interviews/:id", ivH.Get)
	priv.PUT("/interviews/:id", ivH.Update)
	priv.DELETE("/interviews/:id", ivH.Delete)
	priv.GET("/interviews/:id/comments", ivH.GetComments)
	priv.POST("/interviews/:id/comments", ivH.AddComment)
	priv.DELETE("/interviews/:id/comments/:index", ivH.DeleteComment)

	priv.GET("/dashboard-stats", dashH.Stats)

	return r
}
