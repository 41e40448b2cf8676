package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/server/respond"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	Catalog *Catalog
}

// NewHandler constructs a Handler.
func NewHandler(c *Catalog) *Handler {
	return &Handler{Catalog: c}
}

// RegisterRoutes attaches catalog and trend routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/categories", h.categories)
	rg.GET("/catalog/categories/:category/tools", h.tools)
	rg.GET("/catalog/compare", h.compare)
	rg.GET("/trends", h.trends)
	rg.GET("/trends/:area", h.series)
}

func (h *Handler) categories(c *gin.Context) {
	respond.OK(c, gin.H{"categories": h.Catalog.Categories()})
}

func (h *Handler) tools(c *gin.Context) {
	tools, err := h.Catalog.Tools(c.Param("category"), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"tools": tools})
}

func (h *Handler) compare(c *gin.Context) {
	category := c.Query("category")
	if strings.TrimSpace(category) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "category is required", nil)
		return
	}
	var names []string
	if raw := c.Query("tools"); raw != "" {
		names = strings.Split(raw, ",")
	}
	tools, err := h.Catalog.Compare(category, names)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"category": category,
		"metrics":  []string{"popularity", "learning", "community", "performance"},
		"tools":    tools,
	})
}

func (h *Handler) trends(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}
	movers := h.Catalog.Movers()
	respond.OK(c, gin.H{
		"trending": h.Catalog.Trending(limit),
		"rising":   movers.Rising,
		"falling":  movers.Falling,
		"share":    h.Catalog.Share(),
		"areas":    h.Catalog.Areas(),
	})
}

func (h *Handler) series(c *gin.Context) {
	respond.OK(c, h.Catalog.Series(c.Param("area")))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownCategory):
		respond.Error(c, http.StatusNotFound, "not_found", "category not found", nil)
	case errors.Is(err, ErrUnknownTool):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrTooManyTools):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "catalog error", nil)
	}
}
