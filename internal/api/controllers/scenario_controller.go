package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type ScenarioController struct {
	scenarioService services.ScenarioServiceInterface
}

func NewScenarioController(scenarioService services.ScenarioServiceInterface) *ScenarioController {
	return &ScenarioController{
		scenarioService: scenarioService,
	}
}

// GetScenarios godoc
// @Summary List on-course scenarios
// @Description Pressure situations with coaching points. Premium feature.
// @Tags Scenarios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /scenarios [get]
func (s *ScenarioController) GetScenarios(c *gin.Context) {
	scenarios, err := s.scenarioService.GetScenarios(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, scenarios, "")
}

// GetScenarioByID godoc
// @Summary Get one scenario
// @Tags Scenarios
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /scenarios/{id} [get]
func (s *ScenarioController) GetScenarioByID(c *gin.Context) {
	scenario, err := s.scenarioService.GetScenarioByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, scenario, "")
}

// CreateScenario godoc
// @Summary Add a scenario to the catalog
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateScenarioRequest true "Scenario payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/scenarios [post]
func (s *ScenarioController) CreateScenario(c *gin.Context) {
	var req request_models.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	scenario, err := s.scenarioService.CreateScenario(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, scenario, "Scenario created")
}
