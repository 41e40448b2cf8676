package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/server/middleware"
	"stackadvisor-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
	rg.GET("/recommendations/fallback", h.fallback)
}

type recommendRequest struct {
	ProjectName           string  `json:"projectName"`
	ProjectType           *string `json:"projectType" binding:"omitempty,oneof=web mobile desktop backend fullstack"`
	ProjectDescription    string  `json:"projectDescription"`
	TeamSize              *string `json:"teamSize" binding:"omitempty,oneof=solo small medium large enterprise"`
	Budget                *string `json:"budget" binding:"omitempty,oneof=low medium high enterprise"`
	TimeFrame             *string `json:"timeFrame" binding:"omitempty,oneof=urgent normal relaxed longterm"`
	ScalabilityImportance *int    `json:"scalabilityImportance" binding:"omitempty,min=0,max=100"`
	LearningCurve         *int    `json:"learningCurve" binding:"omitempty,min=0,max=100"`
	CommunitySupport      *bool   `json:"communitySupport"`
	EnterpriseSupport     *bool   `json:"enterpriseSupport"`
	OpenSource            *bool   `json:"openSource"`
	APIKey                string  `json:"apiKey"`
}

func (r recommendRequest) toRequirements() ProjectRequirements {
	params := DefaultRequirements()
	params.ProjectName = r.ProjectName
	params.ProjectDescription = r.ProjectDescription
	if r.ProjectType != nil {
		params.ProjectType = ProjectType(*r.ProjectType)
	}
	if r.TeamSize != nil {
		params.TeamSize = TeamSize(*r.TeamSize)
	}
	if r.Budget != nil {
		params.Budget = Budget(*r.Budget)
	}
	if r.TimeFrame != nil {
		params.TimeFrame = TimeFrame(*r.TimeFrame)
	}
	if r.ScalabilityImportance != nil {
		params.ScalabilityImportance = *r.ScalabilityImportance
	}
	if r.LearningCurve != nil {
		params.LearningCurve = *r.LearningCurve
	}
	if r.CommunitySupport != nil {
		params.CommunitySupport = *r.CommunitySupport
	}
	if r.EnterpriseSupport != nil {
		params.EnterpriseSupport = *r.EnterpriseSupport
	}
	if r.OpenSource != nil {
		params.OpenSource = *r.OpenSource
	}
	return params
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid project requirements", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return
	}

	scope := middleware.UserIDFromContext(c)
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))

	outcome, err := h.Svc.Recommend(ctx, scope, req.toRequirements(), req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialRequired):
			respond.Error(c, http.StatusUnauthorized, "credential_required", "An API key is required to request recommendations", nil)
		case errors.Is(err, ErrCredentialLookup):
			respond.Error(c, http.StatusServiceUnavailable, "credential_store_unavailable", "Stored API key could not be read", nil)
		case errors.Is(err, ErrRequestInProgress):
			respond.Error(c, http.StatusConflict, "request_in_progress", "A recommendation request is already in progress", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to get recommendations", nil)
		}
		return
	}

	c.Set("recommendationId", outcome.ID)
	c.Set("recommendationSource", outcome.Source)
	respond.OK(c, outcome)
}

func (h *Handler) fallback(c *gin.Context) {
	respond.OK(c, gin.H{
		"categories":      Categories,
		"recommendations": Fallback(),
	})
}
