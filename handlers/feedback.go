package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/feedback"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	FeedbackService feedback.FeedbackService
}

func NewFeedbackHandler(svc feedback.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{FeedbackService: svc}
}

// SubmitFeedback handles POST /api/feedback.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	fb, err := h.FeedbackService.Submit(c.Request.Context(), current, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": fb.ID})
}

// ListMyFeedback handles GET /api/feedback.
func (h *FeedbackHandler) ListMyFeedback(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	items, err := h.FeedbackService.ListMine(c.Request.Context(), current.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAllFeedback handles GET /api/admin/feedbacks.
func (h *FeedbackHandler) ListAllFeedback(c *gin.Context) {
	items, err := h.FeedbackService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ReviewFeedback handles PUT /api/admin/feedbacks/:id.
func (h *FeedbackHandler) ReviewFeedback(c *gin.Context) {
	var req models.FeedbackReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	fb, err := h.FeedbackService.Review(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

// DeleteFeedback handles DELETE /api/admin/feedbacks/:id.
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	if err := h.FeedbackService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
