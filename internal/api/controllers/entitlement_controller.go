package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/entitlement"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type EntitlementController struct {
	entitlementService services.EntitlementServiceInterface
}

func NewEntitlementController(entitlementService services.EntitlementServiceInterface) *EntitlementController {
	return &EntitlementController{
		entitlementService: entitlementService,
	}
}

// CheckFeature godoc
// @Summary Check access to a feature
// @Description Resolve the caller (anonymous or signed in) against the feature gate. The verdict tells the client which prompt to render; it never errors for locked features.
// @Tags Entitlements
// @Produce json
// @Param feature path string true "Feature tag" Enums(ai-chat, human-coaching, scenarios, community, goals, unlimited-assessments, admin-panel)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /entitlements/{feature} [get]
func (e *EntitlementController) CheckFeature(c *gin.Context) {
	featureTag := c.Param("feature")
	if !entitlement.ValidFeature(featureTag) {
		utils.RespondError(c, http.StatusBadRequest, "Unknown feature")
		return
	}

	decision, err := e.entitlementService.DecideForUser(c.Request.Context(), c.GetString("user_id"), entitlement.Feature(featureTag))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, toAccessDecision(featureTag, decision), "")
}

// RequireFeature guards a route group behind a gate verdict. Anonymous callers
// get a sign-in prompt, under-tiered members an upgrade prompt naming the
// lowest unlocking tier. The gated handler never runs on a denial.
func RequireFeature(entitlementService services.EntitlementServiceInterface, feature entitlement.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := entitlementService.DecideForUser(c.Request.Context(), c.GetString("user_id"), feature)
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}

		switch decision.Verdict {
		case entitlement.VerdictAllow:
			c.Next()
		case entitlement.VerdictDenySignIn:
			utils.RespondError(c, http.StatusUnauthorized, "Sign in to use this feature")
			c.Abort()
		default:
			utils.RespondError(c, http.StatusForbidden, "Upgrade to the "+string(decision.MinTier)+" plan to unlock this feature")
			c.Abort()
		}
	}
}

func toAccessDecision(feature string, d entitlement.Decision) response_models.AccessDecisionResponse {
	return response_models.AccessDecisionResponse{
		Feature: feature,
		Verdict: string(d.Verdict),
		MinTier: string(d.MinTier),
	}
}
