package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type GoalController struct {
	goalService services.GoalServiceInterface
}

func NewGoalController(goalService services.GoalServiceInterface) *GoalController {
	return &GoalController{
		goalService: goalService,
	}
}

// CreateGoal godoc
// @Summary Create a goal
// @Description Goal setting and tracking. Premium feature.
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateGoalRequest true "Goal payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /goals [post]
func (g *GoalController) CreateGoal(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := g.goalService.CreateGoal(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goal, "Goal created")
}

// ListGoals godoc
// @Summary List my goals
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /goals [get]
func (g *GoalController) ListGoals(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	goals, err := g.goalService.ListGoals(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goals, "")
}

// UpdateGoal godoc
// @Summary Update a goal
// @Description Edit goal fields or move it between active, completed and abandoned
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body request_models.UpdateGoalRequest true "Goal payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /goals/{id} [put]
func (g *GoalController) UpdateGoal(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	var req request_models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := g.goalService.UpdateGoal(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goal, "Goal updated")
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /goals/{id} [delete]
func (g *GoalController) DeleteGoal(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	if err := g.goalService.DeleteGoal(c.Request.Context(), id, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Goal deleted")
}
