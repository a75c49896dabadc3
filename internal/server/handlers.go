package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mamadousow/clipsentry/internal/analysis"
	analysisHttp "github.com/mamadousow/clipsentry/internal/analysis/delivery/http"
	analysisRepository "github.com/mamadousow/clipsentry/internal/analysis/repository"
	analysisUsecase "github.com/mamadousow/clipsentry/internal/analysis/usecase"
	"github.com/mamadousow/clipsentry/internal/analyzer"
	"github.com/mamadousow/clipsentry/internal/middleware"
	"github.com/mamadousow/clipsentry/internal/pipeline"
	"github.com/mamadousow/clipsentry/internal/search"
	"github.com/mamadousow/clipsentry/internal/transcriber"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	var jobStore analysis.JobStore
	if s.cfg.Redis.Enabled && s.redisClient != nil {
		jobStore = analysisRepository.NewRedisJobStore(s.redisClient, s.cfg.Scratch.Retention())
	} else {
		jobStore = analysisRepository.NewMemoryJobStore()
	}

	var reportRepo analysis.ReportRepository
	if s.cfg.Postgres.Enabled && s.db != nil {
		reportRepo = analysisRepository.NewReportRepo(s.db)
	}

	var archiveRepo analysis.ArchiveRepository
	if s.cfg.S3.Enabled && s.s3Client != nil {
		archiveRepo = analysisRepository.NewAwsRepository(s.s3Client, s.preSignClient, s.cfg.S3.ArchiveBucket)
	}

	fetcher := pipeline.NewYtDlpFetcher(s.cfg.Tools.YtDlpPath, s.cfg.Scratch.Dir, s.logger)
	extractor := pipeline.NewFFmpegExtractor(s.cfg.Tools.FFmpegPath)
	whisperClient := transcriber.NewWhisperClient(s.cfg.Transcriber, s.logger)
	llmAnalyzer := analyzer.NewLLMAnalyzer(s.cfg.Analyzer, s.logger)
	searchClient := search.NewHTTPSearchClient(s.cfg.Search, s.logger)

	janitor := pipeline.NewJanitor(jobStore, s.cfg.Scratch.Dir, s.cfg.Scratch.Retention(), s.logger)
	orchestrator := pipeline.NewOrchestrator(
		s.cfg,
		jobStore,
		fetcher,
		extractor,
		whisperClient,
		llmAnalyzer,
		reportRepo,
		archiveRepo,
		janitor,
		s.logger,
	)

	analysisUC := analysisUsecase.NewAnalysisUseCase(s.cfg, jobStore, orchestrator, janitor, llmAnalyzer, searchClient, reportRepo, archiveRepo, s.logger)
	analysisHandlers := analysisHttp.NewAnalysisHandler(analysisUC)

	mw := middleware.NewMiddlewareManager(s.cfg, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	analysisGroup := v1.Group("/analysis")
	reportGroup := v1.Group("/reports")

	analysisHttp.MapAnalysisRoutes(analysisGroup, analysisHandlers, mw)
	analysisHttp.MapReportRoutes(reportGroup, analysisHandlers, mw)

	authGroup.POST("/token", s.mintToken())

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}

type tokenRequest struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// mintToken issues a bearer token for the configured API client.
func (s *Server) mintToken() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &tokenRequest{}
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		if err := utils.ValidateStruct(c.Request().Context(), req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if req.ClientID != s.cfg.Server.ClientID || req.ClientSecret != s.cfg.Server.ClientSecret {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		token, err := utils.GenerateJWTToken(req.ClientID, s.cfg)
		if err != nil {
			s.logger.Errorf("mintToken - GenerateJWTToken error: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	}
}
