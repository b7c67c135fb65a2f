package app

import (
	"edu_eval_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		api.POST("/submissions", c.submission.Submit)

		api.GET("/questions", c.catalog.ListQuestions)
		api.GET("/questions/grouped", c.catalog.GroupedQuestions)

		analytics := api.Group("/analytics")
		{
			analytics.GET("/periods", c.analytics.GetPeriods)
			analytics.GET("/feedback", c.analytics.GetFeedback)
			analytics.GET("/responses", c.analytics.GetResponses)
		}

		api.GET("/reports/:id", c.report.GetReport)
		api.GET("/professors/:id/reports", c.report.ListProfessorReports)

		api.POST("/exports", c.export.CreateExport)
		api.GET("/exports/:id", c.export.GetExport)
	}
}
