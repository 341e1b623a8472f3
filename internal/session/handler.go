package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/server/respond"
	"careercraft-backend/internal/users"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
}

func NewHandler(svc *Service, secureCookie bool) *Handler {
	return &Handler{Svc: svc, SecureCookie: secureCookie}
}

// RegisterRoutes attaches the session routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/session/login", h.login)
	rg.POST("/session/signup", h.signup)
	rg.POST("/session/logout", h.logout)
	rg.GET("/session", h.current)
}

type loginRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type signupRequest struct {
	loginRequest
	ConfirmPassword string `json:"confirmPassword"`
}

type sessionResponse struct {
	Token    string `json:"token,omitempty"`
	State    State  `json:"state"`
	Redirect string `json:"redirect,omitempty"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), middleware.SessionIDFromContext(c), req.profile(), users.ProviderPassword)
	h.finish(c, res, err)
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.Signup(c.Request.Context(), middleware.SessionIDFromContext(c), req.profile(), req.Password, req.ConfirmPassword)
	h.finish(c, res, err)
}

func (r loginRequest) profile() Profile {
	return Profile{Name: r.Name, Email: r.Email, RememberMe: r.RememberMe}
}

// finish sets the session cookie and sends the client home.
func (h *Handler) finish(c *gin.Context, res Login, err error) {
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordsMismatch):
			respond.Error(c, http.StatusBadRequest, "passwords_mismatch", "Passwords do not match.", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}
	middleware.SetSessionCookie(c, res.Token, h.Svc.CookieMaxAge(res.State), h.SecureCookie)
	respond.OK(c, sessionResponse{Token: res.Token, State: res.State, Redirect: "/"})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.SessionIDFromContext(c)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log out", nil)
		return
	}
	middleware.SetSessionCookie(c, "", -1, h.SecureCookie)
	respond.OK(c, sessionResponse{State: State{}, Redirect: "/"})
}

func (h *Handler) current(c *gin.Context) {
	state, err := h.Svc.Current(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session", nil)
		return
	}
	respond.OK(c, sessionResponse{State: state})
}
