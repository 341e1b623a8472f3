package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "careercraft-backend/internal/auth"
	"careercraft-backend/internal/feedback"
	"careercraft-backend/internal/guidance"
	"careercraft-backend/internal/interview"
	"careercraft-backend/internal/jobsearch"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/session"
	"careercraft-backend/internal/shared/config"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/server/respond"
	"careercraft-backend/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are
// skipped.
type RouterDeps struct {
	Config           config.Config
	Sessions         middleware.SessionResolver
	SessionHandler   *session.Handler
	GoogleAuth       *googleauth.GoogleService
	FeedbackHandler  *feedback.Handler
	ResumeHandler    *resumes.Handler
	GuidanceHandler  *guidance.Handler
	JobSearchHandler *jobsearch.Handler
	InterviewHandler *interview.Handler
	UserHandler      *users.Handler
	RateLimiter      *middleware.RateLimiter
}

var completionRoutes = map[string]bool{
	"/api/v1/careers/guidance":   true,
	"/api/v1/jobs/search":        true,
	"/api/v1/interview/messages": true,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Session(deps.Sessions),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		metrics.HTTP(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterRoutes(api)
	}

	gated := api.Group("",
		middleware.RequireLogin(),
		middleware.RateLimit(rateLimitConfig(deps)),
	)
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(gated)
	}
	if deps.GuidanceHandler != nil {
		deps.GuidanceHandler.RegisterRoutes(gated)
	}
	if deps.JobSearchHandler != nil {
		deps.JobSearchHandler.RegisterRoutes(gated)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.RegisterRoutes(gated)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(gated)
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	completion := middleware.RateLimitRule{Rate: deps.Config.LLMRateLimit, Burst: deps.Config.LLMRateBurst}
	if completion.Rate <= 0 || completion.Burst <= 0 {
		completion = middleware.RateLimitRule{Rate: 0.5, Burst: 5}
	}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.CompletionGroup: completion,
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && completionRoutes[c.FullPath()] {
				return middleware.CompletionGroup
			}
			return ""
		},
		Limiter: deps.RateLimiter,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
