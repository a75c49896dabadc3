package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/internal/pipeline"
	"github.com/mamadousow/clipsentry/pkg/logger"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

// ErrServerBusy is returned when the host is too loaded to accept another
// pipeline run.
var ErrServerBusy = errors.New("server is too busy to accept new jobs")

type analysisUC struct {
	cfg          *config.Config
	store        analysis.JobStore
	orchestrator *pipeline.Orchestrator
	janitor      *pipeline.Janitor
	analyzer     analysis.ContentAnalyzer
	searcher     analysis.SearchProvider
	reportRepo   analysis.ReportRepository
	archiveRepo  analysis.ArchiveRepository
	logger       logger.Logger
}

func NewAnalysisUseCase(
	cfg *config.Config,
	store analysis.JobStore,
	orchestrator *pipeline.Orchestrator,
	janitor *pipeline.Janitor,
	analyzer analysis.ContentAnalyzer,
	searcher analysis.SearchProvider,
	reportRepo analysis.ReportRepository,
	archiveRepo analysis.ArchiveRepository,
	log logger.Logger,
) analysis.UseCase {
	return &analysisUC{
		cfg:          cfg,
		store:        store,
		orchestrator: orchestrator,
		janitor:      janitor,
		analyzer:     analyzer,
		searcher:     searcher,
		reportRepo:   reportRepo,
		archiveRepo:  archiveRepo,
		logger:       log,
	}
}

// SubmitJob registers a new pipeline run and returns its handle right away;
// the pipeline itself runs asynchronously. Handles embed the submission
// time, so resubmitting the same video yields a distinct, independently
// trackable job.
func (u *analysisUC) SubmitJob(ctx context.Context, input *models.SubmitJobInput) (*models.AnalysisJob, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("SubmitJob - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}

	if canAccept, usage := utils.CheckCPUUsage(u.cfg.Worker.MaxCPUUsage); !canAccept {
		u.logger.Warnf("SubmitJob rejected, CPU usage %.2f%%", usage)
		return nil, ErrServerBusy
	}

	videoID := utils.SanitizeLocalID(input.VideoID)
	job := &models.AnalysisJob{
		JobID:      fmt.Sprintf("download_%s_%d", videoID, time.Now().UnixNano()),
		VideoID:    input.VideoID,
		SourceURL:  input.SourceURL,
		Title:      input.Title,
		Channel:    input.Channel,
		Stage:      models.StageQueued,
		Progress:   0,
		StatusText: "Job queued",
		CreatedAt:  time.Now(),
	}

	if err := u.store.Create(ctx, job); err != nil {
		u.logger.Errorf("SubmitJob - store.Create error: %v", err)
		return nil, fmt.Errorf("failed to register job: %v", err)
	}

	u.logger.Infof("job %s submitted for video %s", job.JobID, job.VideoID)
	u.orchestrator.Launch(job.Clone())
	return job, nil
}

func (u *analysisUC) GetJobProgress(ctx context.Context, jobID string) (*models.JobProgress, error) {
	job, err := u.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return job.ToProgress(), nil
}

// GetJobReport returns the full report only once the job completed; before
// that, and after the retention purge, the handle reads as not found.
func (u *analysisUC) GetJobReport(ctx context.Context, jobID string) (*models.AnalysisReport, error) {
	job, err := u.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Stage != models.StageCompleted || job.Report == nil {
		return nil, analysis.ErrJobNotFound
	}
	return job.Report, nil
}

// GetJobArtifacts returns presigned download links for a completed job's
// archived transcript and report.
func (u *analysisUC) GetJobArtifacts(ctx context.Context, jobID string) (*models.ArtifactLinks, error) {
	if u.archiveRepo == nil {
		return nil, fmt.Errorf("artifact archive is not configured")
	}
	job, err := u.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Stage != models.StageCompleted {
		return nil, analysis.ErrJobNotFound
	}

	transcriptURL, err := u.archiveRepo.GetPresignedURL(ctx, analysis.TranscriptKey(jobID))
	if err != nil {
		u.logger.Errorf("GetJobArtifacts - presign transcript error: %v", err)
		return nil, fmt.Errorf("failed to presign artifacts: %v", err)
	}
	reportURL, err := u.archiveRepo.GetPresignedURL(ctx, analysis.ReportKey(jobID))
	if err != nil {
		u.logger.Errorf("GetJobArtifacts - presign report error: %v", err)
		return nil, fmt.Errorf("failed to presign artifacts: %v", err)
	}
	return &models.ArtifactLinks{
		TranscriptURL: transcriptURL,
		ReportURL:     reportURL,
	}, nil
}

// CancelJob abandons an in-flight job and reclaims its scratch resources
// immediately instead of waiting out the retention window.
func (u *analysisUC) CancelJob(ctx context.Context, jobID string) error {
	if _, err := u.store.Get(ctx, jobID); err != nil {
		return err
	}
	u.orchestrator.Cancel(jobID)
	u.janitor.Cancel(jobID)
	u.janitor.Purge(jobID)
	if u.archiveRepo != nil {
		// Best effort: a cancelled job's archived artifacts go too.
		if err := u.archiveRepo.RemoveObject(ctx, analysis.TranscriptKey(jobID)); err != nil {
			u.logger.Warnf("CancelJob - remove archived transcript: %v", err)
		}
		if err := u.archiveRepo.RemoveObject(ctx, analysis.ReportKey(jobID)); err != nil {
			u.logger.Warnf("CancelJob - remove archived report: %v", err)
		}
	}
	u.logger.Infof("job %s cancelled", jobID)
	return nil
}

// AnalyzeDirect is the synchronous direct-URL path: no artifacts, no job
// handle, no progress reporting, one multimodal analysis call.
func (u *analysisUC) AnalyzeDirect(ctx context.Context, input *models.DirectAnalyzeInput) (*models.AnalysisReport, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("AnalyzeDirect - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}
	report, err := u.analyzer.AnalyzeURL(ctx, input.VideoURL, input.Title, input.Channel)
	if err != nil {
		u.logger.Errorf("AnalyzeDirect - AnalyzeURL error: %v", err)
		return nil, err
	}
	return report, nil
}

func (u *analysisUC) SearchVideos(ctx context.Context, query string, pagination *utils.Pagination) ([]models.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("invalid query: cannot be empty")
	}
	results, err := u.searcher.Search(ctx, query, pagination.GetSize())
	if err != nil {
		u.logger.Errorf("SearchVideos - Search error: %v", err)
		return nil, fmt.Errorf("failed to search videos: %v", err)
	}
	return results, nil
}

func (u *analysisUC) ListReports(ctx context.Context, pagination *utils.Pagination) (*models.ReportList, error) {
	if u.reportRepo == nil {
		return nil, fmt.Errorf("report archive is not configured")
	}
	reports, err := u.reportRepo.GetReports(ctx, pagination)
	if err != nil {
		u.logger.Errorf("ListReports - GetReports error: %v", err)
		return nil, fmt.Errorf("failed to fetch reports: %v", err)
	}
	return reports, nil
}

func (u *analysisUC) GetReportByVideoID(ctx context.Context, videoID string) (*models.ArchivedReport, error) {
	if u.reportRepo == nil {
		return nil, fmt.Errorf("report archive is not configured")
	}
	report, err := u.reportRepo.GetReportByVideoID(ctx, videoID)
	if err != nil {
		if errors.Is(err, analysis.ErrJobNotFound) {
			return nil, err
		}
		u.logger.Errorf("GetReportByVideoID - error: %v", err)
		return nil, fmt.Errorf("failed to fetch report: %v", err)
	}
	return report, nil
}
