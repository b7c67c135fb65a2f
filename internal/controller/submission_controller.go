package controller

import (
	"edu_eval_backend/internal/service"
	"edu_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// @Summary Submit answers
// @Description Stores one respondent's answers atomically
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body service.SubmissionRequest true "answers keyed by question id"
// @Success 200 {object} util.Response{data=model.SubmissionResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.SubmissionService.Submit(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
