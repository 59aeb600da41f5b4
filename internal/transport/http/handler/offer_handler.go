package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
	resp "selectiq/internal/transport/http/response"
)

type OfferHandler struct {
	offers domain.OfferRepository
	log    *zap.Logger
}

func NewOfferHandler(offers domain.OfferRepository, log *zap.Logger) *OfferHandler {
	return &OfferHandler{offers: offers, log: log}
}

// List is public: the careers page shows active offers, newest first.
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.offers.ListActive(c.Request.Context())
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) Create(c *gin.Context) {
	var o domain.JobOffer
	if err := c.ShouldBindJSON(&o); err != nil {
		resp.WriteError(c, apperr.Validation("title", "company", "description"))
		return
	}
	o.ID = 0
	if err := h.offers.Create(c.Request.Context(), &o); err != nil {
		resp.WriteError(c, err)
		return
	}
	h.log.Info("job offer created", zap.Uint("id", o.ID), zap.String("title", o.Title))
	c.JSON(http.StatusCreated, o)
}

func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.OfferPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.WriteError(c, apperr.ValidationMsg("body", "malformed JSON body"))
		return
	}
	o, err := h.offers.Update(c.Request.Context(), id, patch)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.offers.Delete(c.Request.Context(), id); err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job offer deleted successfully"})
}

// pathID parses the {id} segment, writing a not-found on garbage so
// non-numeric ids read the same as missing rows.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.WriteError(c, apperr.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}
