package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type ProgressController struct {
	progressService services.ProgressServiceInterface
}

func NewProgressController(progressService services.ProgressServiceInterface) *ProgressController {
	return &ProgressController{
		progressService: progressService,
	}
}

// GetSummary godoc
// @Summary Progress summary
// @Description Aggregate a member's assessments, skills checks, control circles and goals over a date range. Defaults to the last 30 days.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param from query int false "Range start (unix seconds)"
// @Param to query int false "Range end (unix seconds)"
// @Success 200 {object} utils.APIResponse
// @Router /progress/summary [get]
func (p *ProgressController) GetSummary(c *gin.Context) {
	id, ok := mustAccountID(c)
	if !ok {
		return
	}

	from, _ := strconv.ParseInt(c.Query("from"), 10, 64)
	to, _ := strconv.ParseInt(c.Query("to"), 10, 64)

	summary, err := p.progressService.GetSummary(c.Request.Context(), id, from, to)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "")
}
