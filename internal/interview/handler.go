package interview

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/server/respond"
	"careercraft-backend/internal/shared/storage/kv"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the interview routes. The group is expected to be
// gated by login.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interview/messages", h.send)
	rg.GET("/interview/messages", h.transcript)
	rg.DELETE("/interview/messages", h.clear)
}

type sendRequest struct {
	Message string `json:"message"`
}

func owner(c *gin.Context) string {
	return kv.UserOwner(middleware.IdentityFromContext(c).Email)
}

func (h *Handler) send(c *gin.Context) {
	c.Set(middleware.UseCaseKey, UseCase)
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	ex, err := h.Svc.Send(c.Request.Context(), owner(c), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please enter your job role or question.", nil)
		case errors.Is(err, ErrTooLong):
			respond.Error(c, http.StatusBadRequest, "message_too_long", "Message too long. Please keep it under 500 characters.", gin.H{"max": MaxMessageLength})
		case llm.ReasonOf(err) != "":
			respond.Completion(c, err)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong while fetching the AI response.", nil)
		}
		return
	}
	respond.OK(c, ex)
}

func (h *Handler) transcript(c *gin.Context) {
	msgs, err := h.Svc.Transcript(c.Request.Context(), owner(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load transcript", nil)
		return
	}
	respond.OK(c, gin.H{"messages": msgs})
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), owner(c)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear transcript", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
