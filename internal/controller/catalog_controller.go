package controller

import (
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/service"
	"edu_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary List questions
// @Tags Catalog
// @Produce json
// @Success 200 {object} util.Response{data=[]model.QuestionView}
// @Router /api/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	questions, err := c.CatalogService.ListQuestions(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

type groupedQuery struct {
	Audience string `form:"audience" binding:"required,audience"`
}

// @Summary Questions of an audience grouped by stage
// @Tags Catalog
// @Produce json
// @Param audience query string true "student or professor"
// @Success 200 {object} util.Response{data=[]model.QuestionGroup}
// @Router /api/questions/grouped [get]
func (c *CatalogController) GroupedQuestions(ctx *gin.Context) {
	var q groupedQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		bindError(ctx, err)
		return
	}

	groups, err := c.CatalogService.QuestionSet(ctx.Request.Context(), model.Audience(q.Audience))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}
