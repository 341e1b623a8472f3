package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public form routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.contact)
	rg.POST("/feedback", h.feedback)
}

func (h *Handler) contact(c *gin.Context) {
	var req Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	saved, err := h.Svc.SubmitContact(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"id":      saved.ID,
		"message": "Thank you for your message! We'll get back to you soon.",
	})
}

func (h *Handler) feedback(c *gin.Context) {
	var req Feedback
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	saved, err := h.Svc.SubmitFeedback(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"id":      saved.ID,
		"message": "Thank you for your feedback!",
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please fill in all required fields.", gin.H{"fields": verr.Fields})
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save your message", nil)
}
