package http

import (
	"github.com/labstack/echo/v4"
	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/middleware"
)

func MapAnalysisRoutes(analysisGroup *echo.Group, h analysis.Handler, mw *middleware.MiddlewareManager) {
	analysisGroup.Use(mw.AuthJWTMiddleware())
	analysisGroup.POST("/jobs", h.SubmitJob())
	analysisGroup.GET("/jobs/:job_id", h.GetJobProgress())
	analysisGroup.GET("/jobs/:job_id/report", h.GetJobReport())
	analysisGroup.GET("/jobs/:job_id/artifacts", h.GetJobArtifacts())
	analysisGroup.DELETE("/jobs/:job_id", h.CancelJob())
	analysisGroup.POST("/direct", h.AnalyzeDirect())
	analysisGroup.GET("/search", h.SearchVideos())
}

func MapReportRoutes(reportGroup *echo.Group, h analysis.Handler, mw *middleware.MiddlewareManager) {
	reportGroup.Use(mw.AuthJWTMiddleware())
	reportGroup.GET("", h.ListReports())
	reportGroup.GET("/:video_id", h.GetReportByVideoID())
}
