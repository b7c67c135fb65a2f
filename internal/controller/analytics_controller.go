package controller

import (
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/service"
	"edu_eval_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary List analytics periods
// @Tags Analytics
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Period}
// @Router /api/analytics/periods [get]
func (c *AnalyticsController) GetPeriods(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"allTime": service.AllTimePeriod(),
		"periods": c.AnalyticsService.Periods(time.Now()),
	})
}

type feedbackQuery struct {
	ProfessorID uint   `form:"professorId" binding:"required"`
	SubjectID   uint   `form:"subjectId" binding:"required"`
	Period      string `form:"period" binding:"omitempty,period_key"`
}

// @Summary Feedback analytics
// @Description Average, rating distribution and trend of a professor on a subject
// @Tags Analytics
// @Produce json
// @Param professorId query int true "professor id"
// @Param subjectId query int true "subject id"
// @Param period query string false "period key, defaults to all time"
// @Success 200 {object} util.Response{data=model.FeedbackAnalytics}
// @Router /api/analytics/feedback [get]
func (c *AnalyticsController) GetFeedback(ctx *gin.Context) {
	var q feedbackQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		bindError(ctx, err)
		return
	}

	analytics, err := c.AnalyticsService.FeedbackAnalytics(ctx.Request.Context(), q.ProfessorID, q.SubjectID, q.Period)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}

type responsesQuery struct {
	Audience string `form:"audience" binding:"required,audience"`
	Period   string `form:"period" binding:"omitempty,period_key"`
}

// @Summary Response summary
// @Description Stored responses of an audience grouped by stage with value counts
// @Tags Analytics
// @Produce json
// @Param audience query string true "student or professor"
// @Param period query string false "period key, defaults to all time"
// @Success 200 {object} util.Response{data=model.ResponseSummary}
// @Router /api/analytics/responses [get]
func (c *AnalyticsController) GetResponses(ctx *gin.Context) {
	var q responsesQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		bindError(ctx, err)
		return
	}

	summary, err := c.AnalyticsService.ResponseSummary(ctx.Request.Context(), model.Audience(q.Audience), q.Period)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
