package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
	"selectiq/internal/pipeline"
	resp "selectiq/internal/transport/http/response"
)

type ApplicationHandler struct {
	apps    domain.ApplicationRepository
	manager *pipeline.Manager
	log     *zap.Logger
}

func NewApplicationHandler(apps domain.ApplicationRepository, manager *pipeline.Manager, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, manager: manager, log: log}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context())
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Create is the public submission endpoint. Contention on the embedded
// store is retried by the gateway; exhausted retries surface as 503.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var a domain.JobApplication
	if err := c.ShouldBindJSON(&a); err != nil {
		resp.WriteError(c, apperr.Validation("full_name", "email", "job_title"))
		return
	}
	a.ID = 0
	if err := h.manager.SubmitApplication(c.Request.Context(), &a); err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Application created successfully",
		"application": a,
	})
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.WriteError(c, apperr.ValidationMsg("body", "malformed JSON body"))
		return
	}
	a, err := h.manager.UpdateApplication(c.Request.Context(), id, patch)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete accepts a numeric id or, failing that, an email address.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	ident := c.Param("id")
	if err := h.apps.DeleteByIDOrEmail(c.Request.Context(), ident); err != nil {
		resp.WriteError(c, err)
		return
	}
	h.log.Info("application deleted", zap.String("ident", ident))
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// FormCallback receives external form submissions. It is the only path
// that produces the terminal "completed" application status.
func (h *ApplicationHandler) FormCallback(c *gin.Context) {
	var a domain.JobApplication
	if err := c.ShouldBindJSON(&a); err != nil {
		resp.WriteError(c, apperr.Validation("full_name", "email", "job_title"))
		return
	}
	a.ID = 0
	var appID uint
	if raw := c.Query("app_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.WriteError(c, apperr.ValidationMsg("app_id", "app_id must be numeric"))
			return
		}
		appID = uint(parsed)
	}
	saved, err := h.manager.CompleteFromForm(c.Request.Context(), appID, &a)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "application_id": saved.ID})
}
