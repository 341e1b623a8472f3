package guidance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the guidance route. The group is expected to be
// gated by login.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/careers/guidance", h.suggest)
}

func (h *Handler) suggest(c *gin.Context) {
	c.Set(middleware.UseCaseKey, UseCase)
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.Suggest(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please enter your skills, interests, or degree.", nil)
			return
		}
		respond.Completion(c, err)
		return
	}
	respond.OK(c, res)
}
