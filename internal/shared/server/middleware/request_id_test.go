package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestIDGeneratesUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	id := resp.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid request id, got %q", id)
	}
	if resp.Body.String() != id {
		t.Fatalf("context id %q does not match header %q", resp.Body.String(), id)
	}
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("expected incoming id, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("a", 200))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Request-Id"); len(got) > 128 {
		t.Fatalf("expected oversized id to be replaced, got length %d", len(got))
	}
}
