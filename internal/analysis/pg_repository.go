package analysis

import (
	"context"

	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

// ReportRepository archives completed reports for querying past the job
// retention window.
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.ArchivedReport) (*models.ArchivedReport, error)
	GetReportByVideoID(ctx context.Context, videoID string) (*models.ArchivedReport, error)
	GetReports(ctx context.Context, pagination *utils.Pagination) (*models.ReportList, error)
}
