package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type AssessmentController struct {
	assessmentService services.AssessmentServiceInterface
}

func NewAssessmentController(assessmentService services.AssessmentServiceInterface) *AssessmentController {
	return &AssessmentController{
		assessmentService: assessmentService,
	}
}

// CreateAssessment godoc
// @Summary Submit a mental-game assessment
// @Description Record an assessment result. Free members get a monthly allowance; premium and up are unlimited.
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateAssessmentRequest true "Assessment payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Router /assessments [post]
func (a *AssessmentController) CreateAssessment(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	assessment, err := a.assessmentService.CreateAssessment(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, assessment, "Assessment recorded")
}

// ListAssessments godoc
// @Summary List my assessments
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /assessments [get]
func (a *AssessmentController) ListAssessments(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	assessments, err := a.assessmentService.ListAssessments(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, assessments, "")
}

// GetAssessment godoc
// @Summary Get one of my assessments
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /assessments/{id} [get]
func (a *AssessmentController) GetAssessment(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	assessment, err := a.assessmentService.GetAssessment(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, assessment, "")
}

// CreateSkillsCheck godoc
// @Summary Submit a skills check
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateSkillsCheckRequest true "Skills check payload"
// @Success 200 {object} utils.APIResponse
// @Router /skills-checks [post]
func (a *AssessmentController) CreateSkillsCheck(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateSkillsCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	check, err := a.assessmentService.CreateSkillsCheck(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, check, "Skills check recorded")
}

// ListSkillsChecks godoc
// @Summary List my skills checks
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /skills-checks [get]
func (a *AssessmentController) ListSkillsChecks(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	checks, err := a.assessmentService.ListSkillsChecks(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checks, "")
}

// CreateControlCircle godoc
// @Summary Submit a control circle exercise
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateControlCircleRequest true "Control circle payload"
// @Success 200 {object} utils.APIResponse
// @Router /control-circles [post]
func (a *AssessmentController) CreateControlCircle(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateControlCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	circle, err := a.assessmentService.CreateControlCircle(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, circle, "Control circle recorded")
}

// ListControlCircles godoc
// @Summary List my control circle exercises
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /control-circles [get]
func (a *AssessmentController) ListControlCircles(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	circles, err := a.assessmentService.ListControlCircles(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, circles, "")
}
