package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type TechniqueController struct {
	techniqueService services.TechniqueServiceInterface
}

func NewTechniqueController(techniqueService services.TechniqueServiceInterface) *TechniqueController {
	return &TechniqueController{
		techniqueService: techniqueService,
	}
}

// GetTechniques godoc
// @Summary List mental-game techniques
// @Tags Techniques
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /techniques [get]
func (t *TechniqueController) GetTechniques(c *gin.Context) {
	techniques, err := t.techniqueService.GetTechniques(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, techniques, "")
}

// GetTechniqueByID godoc
// @Summary Get one technique
// @Tags Techniques
// @Produce json
// @Param id path string true "Technique ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /techniques/{id} [get]
func (t *TechniqueController) GetTechniqueByID(c *gin.Context) {
	technique, err := t.techniqueService.GetTechniqueByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, technique, "")
}

// CreateTechnique godoc
// @Summary Add a technique to the catalog
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateTechniqueRequest true "Technique payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/techniques [post]
func (t *TechniqueController) CreateTechnique(c *gin.Context) {
	var req request_models.CreateTechniqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	technique, err := t.techniqueService.CreateTechnique(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, technique, "Technique created")
}
