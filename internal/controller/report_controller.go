package controller

import (
	"edu_eval_backend/internal/service"
	"edu_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// @Summary Get report
// @Tags Reports
// @Produce json
// @Param id path int true "report id"
// @Success 200 {object} util.Response{data=model.ReportView}
// @Failure 404 {object} util.Response
// @Router /api/reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid report id")
		return
	}

	report, err := c.ReportService.GetReport(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary List reports of a professor
// @Tags Reports
// @Produce json
// @Param id path int true "professor id"
// @Success 200 {object} util.Response{data=[]model.ReportView}
// @Router /api/professors/{id}/reports [get]
func (c *ReportController) ListProfessorReports(ctx *gin.Context) {
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid professor id")
		return
	}

	reports, err := c.ReportService.ListReports(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}
