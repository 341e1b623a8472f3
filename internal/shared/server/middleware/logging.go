package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/telemetry"
)

// UseCaseKey lets handlers tag the request log with the feature they served.
const UseCaseKey = "useCase"

// Logging emits one structured line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		id := IdentityFromContext(c)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"session_id":  id.SessionID,
			"logged_in":   id.LoggedIn,
			"use_case":    c.GetString(UseCaseKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
