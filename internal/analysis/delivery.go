package analysis

import "github.com/labstack/echo/v4"

type Handler interface {
	SubmitJob() echo.HandlerFunc
	GetJobProgress() echo.HandlerFunc
	GetJobReport() echo.HandlerFunc
	GetJobArtifacts() echo.HandlerFunc
	CancelJob() echo.HandlerFunc
	AnalyzeDirect() echo.HandlerFunc
	SearchVideos() echo.HandlerFunc
	ListReports() echo.HandlerFunc
	GetReportByVideoID() echo.HandlerFunc
}
