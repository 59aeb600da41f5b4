package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
	"selectiq/internal/pipeline"
	resp "selectiq/internal/transport/http/response"
)

type CandidateHandler struct {
	candidates domain.CandidateRepository
	manager    *pipeline.Manager
	log        *zap.Logger
}

func NewCandidateHandler(candidates domain.CandidateRepository, manager *pipeline.Manager, log *zap.Logger) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, manager: manager, log: log}
}

func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidates.List(c.Request.Context())
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Create promotes an applicant into the candidate pool. Resubmitting the
// same (email, job_title) is not an error: the existing record comes back
// with a 200 instead of a 201.
func (h *CandidateHandler) Create(c *gin.Context) {
	var cand domain.JobCandidate
	if err := c.ShouldBindJSON(&cand); err != nil {
		resp.WriteError(c, apperr.Validation("full_name", "email", "job_title"))
		return
	}
	cand.ID = 0
	existed, err := h.manager.PromoteCandidate(c.Request.Context(), &cand)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Candidate already exists",
			"candidate": cand,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Candidate created successfully",
		"candidate": cand,
	})
}
