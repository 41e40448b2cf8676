package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stackadvisor-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	guestHeader  = "X-Guest-Id"
	publicPrefix = "/api/v1/health"
)

// Identity resolves the caller scope from the X-Guest-Id header. The browser generates the
// ID once and keeps it, so the scope plays the role of origin-local storage.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, publicPrefix) {
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader(guestHeader))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		if _, err := uuid.Parse(guestID); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "X-Guest-Id must be a UUID", nil)
			return
		}

		c.Set(userIDKey, "guest:"+strings.ToLower(guestID))
		c.Next()
	}
}

// UserIDFromContext fetches the caller scope set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
