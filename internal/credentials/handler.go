package credentials

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/server/middleware"
	"stackadvisor-backend/internal/shared/server/respond"
)

// Handler exposes credential save/status/clear endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches credential routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credential", h.status)
	rg.PUT("/credential", h.save)
	rg.DELETE("/credential", h.clear)
}

type saveRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "apiKey is required", nil)
		return
	}
	scope := middleware.UserIDFromContext(c)
	if err := h.Svc.Save(c.Request.Context(), scope, req.APIKey); err != nil {
		if errors.Is(err, ErrEmptyCredential) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "apiKey is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save credential", nil)
		return
	}
	respond.OK(c, Status{Configured: true, Hint: Mask(req.APIKey)})
}

func (h *Handler) status(c *gin.Context) {
	st, err := h.Svc.Status(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read credential", nil)
		return
	}
	respond.OK(c, st)
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), middleware.UserIDFromContext(c)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear credential", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
