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

type InterviewHandler struct {
	interviews domain.InterviewRepository
	manager    *pipeline.Manager
	log        *zap.Logger
}

func NewInterviewHandler(interviews domain.InterviewRepository, manager *pipeline.Manager, log *zap.Logger) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, manager: manager, log: log}
}

// List never errors to the caller: storage trouble degrades to an empty
// list so the scheduling UI stays usable.
func (h *InterviewHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.interviews.List(c.Request.Context()))
}

func (h *InterviewHandler) Create(c *gin.Context) {
	var iv domain.Interview
	if err := c.ShouldBindJSON(&iv); err != nil {
		resp.WriteError(c, apperr.Validation(
			"candidate_name", "interview_date", "interview_time", "interviewer", "interview_type"))
		return
	}
	iv.ID = 0
	iv.Comments = ""
	if err := h.manager.ScheduleInterview(c.Request.Context(), &iv); err != nil {
		resp.WriteError(c, err)
		return
	}
	h.log.Info("interview scheduled",
		zap.Uint("id", iv.ID), zap.String("candidate", iv.CandidateName))
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Interview created successfully",
		"interview": iv,
	})
}

func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	iv, err := h.interviews.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.InterviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.WriteError(c, apperr.ValidationMsg("body", "malformed JSON body"))
		return
	}
	iv, err := h.manager.UpdateInterview(c.Request.Context(), id, patch)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.interviews.Delete(c.Request.Context(), id); err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interview deleted successfully"})
}

func (h *InterviewHandler) GetComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	iv, err := h.interviews.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": iv.CommentList()})
}

func (h *InterviewHandler) AddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, domain.ErrEmptyComment)
		return
	}
	if err := h.interviews.AppendComment(c.Request.Context(), id, in.Comment); err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment added successfully"})
}

func (h *InterviewHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		resp.WriteError(c, apperr.ValidationMsg("index", "comment index must be numeric"))
		return
	}
	if err := h.interviews.DeleteCommentAt(c.Request.Context(), id, index); err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted successfully"})
}
