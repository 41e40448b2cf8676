package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/credentials"
	"stackadvisor-backend/internal/recommendations"
	"stackadvisor-backend/internal/services/health"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/metrics"
	"stackadvisor-backend/internal/shared/server/middleware"
	"stackadvisor-backend/internal/shared/server/respond"
)

const rateLimitGroupRecommend = "RECOMMEND"

// RouterDeps carries the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config                config.Config
	Health                *health.Service
	RecommendationHandler *recommendations.Handler
	CredentialHandler     *credentials.Handler
	CatalogHandler        *catalog.Handler
	Limiter               *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}

	scoped := api.Group("")
	scoped.Use(
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				rateLimitGroupRecommend: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			},
		}),
	)
	registerMeRoutes(scoped)
	if deps.RecommendationHandler != nil {
		deps.RecommendationHandler.RegisterRoutes(scoped)
	}
	if deps.CredentialHandler != nil {
		deps.CredentialHandler.RegisterRoutes(scoped)
	}

	return r
}

// rateLimitGroup limits only outbound-cost requests; everything else passes through.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/recommendations" {
		return rateLimitGroupRecommend
	}
	return ""
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
