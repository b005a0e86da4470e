package controllers

import (
	"github.com/gin-gonic/gin"

	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// GetPlans godoc
// @Summary List subscription plans
// @Description Return the active plans with pricing and feature lists, cheapest first
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PlanController) GetPlans(c *gin.Context) {
	plans, err := p.planService.GetPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "")
}

// GetPlanByCode godoc
// @Summary Plan detail
// @Description Return one plan by its code (free, premium, ultimate)
// @Tags Plans
// @Produce json
// @Param code path string true "Plan code"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{code} [get]
func (p *PlanController) GetPlanByCode(c *gin.Context) {
	plan, err := p.planService.GetPlanByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "")
}
