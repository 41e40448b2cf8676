package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		recommendationID, _ := c.Get("recommendationId")
		recommendationSource, _ := c.Get("recommendationSource")

		telemetry.Info("request.complete", map[string]any{
			"request_id":            RequestIDFromContext(c),
			"method":                c.Request.Method,
			"path":                  c.Request.URL.Path,
			"route":                 c.FullPath(),
			"status":                c.Writer.Status(),
			"duration_ms":           float64(latency.Microseconds()) / 1000.0,
			"user_id":               UserIDFromContext(c),
			"recommendation_id":     recommendationID,
			"recommendation_source": recommendationSource,
			"client_ip":             c.ClientIP(),
			"user_agent":            c.Request.UserAgent(),
		})
	}
}
