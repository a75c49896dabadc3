package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mamadousow/clipsentry/internal/analysis"
	analysisUC "github.com/mamadousow/clipsentry/internal/analysis/usecase"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

type analysisHandler struct {
	analysisUC analysis.UseCase
}

func NewAnalysisHandler(uc analysis.UseCase) analysis.Handler {
	return &analysisHandler{
		analysisUC: uc,
	}
}

func (h *analysisHandler) SubmitJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.SubmitJobInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		job, err := h.analysisUC.SubmitJob(c.Request().Context(), input)
		if err != nil {
			if errors.Is(err, analysisUC.ErrServerBusy) {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, map[string]string{
			"job_id": job.JobID,
			"status": "started",
		})
	}
}

func (h *analysisHandler) GetJobProgress() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID := c.Param("job_id")
		progress, err := h.analysisUC.GetJobProgress(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, analysis.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, progress)
	}
}

func (h *analysisHandler) GetJobReport() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID := c.Param("job_id")
		report, err := h.analysisUC.GetJobReport(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, analysis.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Report not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, report)
	}
}

func (h *analysisHandler) GetJobArtifacts() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID := c.Param("job_id")
		links, err := h.analysisUC.GetJobArtifacts(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, analysis.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, links)
	}
}

func (h *analysisHandler) CancelJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID := c.Param("job_id")
		if err := h.analysisUC.CancelJob(c.Request().Context(), jobID); err != nil {
			if errors.Is(err, analysis.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Job cancelled"})
	}
}

func (h *analysisHandler) AnalyzeDirect() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.DirectAnalyzeInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		report, err := h.analysisUC.AnalyzeDirect(c.Request().Context(), input)
		if err != nil {
			if errors.Is(err, analysis.ErrAnalysisFailed) {
				return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, report)
	}
}

func (h *analysisHandler) SearchVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.QueryParam("query")
		if query == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Query param is required"})
		}
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		results, err := h.analysisUC.SearchVideos(c.Request().Context(), query, pagination)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, results)
	}
}

func (h *analysisHandler) ListReports() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		reports, err := h.analysisUC.ListReports(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, reports)
	}
}

func (h *analysisHandler) GetReportByVideoID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID := c.Param("video_id")
		report, err := h.analysisUC.GetReportByVideoID(c.Request().Context(), videoID)
		if err != nil {
			if errors.Is(err, analysis.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Report not found"})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, report)
	}
}
