package controller

import (
	"edu_eval_backend/internal/service"
	"edu_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

// @Summary Start an analytics export
// @Description Queues an xlsx export of feedback analytics
// @Tags Exports
// @Accept json
// @Produce json
// @Param request body service.ExportRequest true "export parameters"
// @Success 202 {object} util.Response{data=model.ExportJob}
// @Router /api/exports [post]
func (c *ExportController) CreateExport(ctx *gin.Context) {
	var req service.ExportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	job, err := c.ExportService.CreateExport(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Accepted(ctx, job)
}

// @Summary Export status
// @Tags Exports
// @Produce json
// @Param id path string true "job id"
// @Success 200 {object} util.Response{data=model.ExportJob}
// @Failure 404 {object} util.Response
// @Router /api/exports/{id} [get]
func (c *ExportController) GetExport(ctx *gin.Context) {
	job, err := c.ExportService.GetExport(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, job)
}
