package analysis

import (
	"context"

	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

type UseCase interface {
	SubmitJob(ctx context.Context, input *models.SubmitJobInput) (*models.AnalysisJob, error)
	GetJobProgress(ctx context.Context, jobID string) (*models.JobProgress, error)
	GetJobReport(ctx context.Context, jobID string) (*models.AnalysisReport, error)
	GetJobArtifacts(ctx context.Context, jobID string) (*models.ArtifactLinks, error)
	CancelJob(ctx context.Context, jobID string) error

	AnalyzeDirect(ctx context.Context, input *models.DirectAnalyzeInput) (*models.AnalysisReport, error)

	SearchVideos(ctx context.Context, query string, pagination *utils.Pagination) ([]models.SearchResult, error)

	ListReports(ctx context.Context, pagination *utils.Pagination) (*models.ReportList, error)
	GetReportByVideoID(ctx context.Context, videoID string) (*models.ArchivedReport, error)
}
