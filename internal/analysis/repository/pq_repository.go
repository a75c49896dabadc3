package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/utils"
	"github.com/pkg/errors"
)

type reportRepo struct {
	db *sqlx.DB
}

func NewReportRepo(db *sqlx.DB) analysis.ReportRepository {
	return &reportRepo{
		db: db,
	}
}

// reportRow mirrors the analysis_reports table; the report column is JSONB.
type reportRow struct {
	ReportID  string    `db:"report_id"`
	JobID     string    `db:"job_id"`
	VideoID   string    `db:"video_id"`
	Title     string    `db:"title"`
	Channel   string    `db:"channel"`
	RiskLevel string    `db:"risk_level"`
	Report    []byte    `db:"report"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *reportRow) toModel() (*models.ArchivedReport, error) {
	archived := &models.ArchivedReport{
		ReportID:  r.ReportID,
		JobID:     r.JobID,
		VideoID:   r.VideoID,
		Title:     r.Title,
		Channel:   r.Channel,
		RiskLevel: r.RiskLevel,
		CreatedAt: r.CreatedAt,
	}
	if len(r.Report) > 0 {
		report := &models.AnalysisReport{}
		if err := json.Unmarshal(r.Report, report); err != nil {
			return nil, errors.Wrap(err, "reportRepo.toModel.Unmarshal")
		}
		archived.Report = report
	}
	return archived, nil
}

func (r *reportRepo) CreateReport(ctx context.Context, report *models.ArchivedReport) (*models.ArchivedReport, error) {
	reportJSON, err := json.Marshal(report.Report)
	if err != nil {
		return nil, errors.Wrap(err, "reportRepo.CreateReport.Marshal")
	}
	row := &reportRow{}
	if err := r.db.QueryRowxContext(
		ctx,
		createReportQuery,
		report.ReportID,
		report.JobID,
		report.VideoID,
		report.Title,
		report.Channel,
		report.RiskLevel,
		reportJSON,
	).StructScan(row); err != nil {
		return nil, errors.Wrap(err, "reportRepo.CreateReport.StructScan")
	}
	created := *report
	created.CreatedAt = row.CreatedAt
	return &created, nil
}

func (r *reportRepo) GetReportByVideoID(ctx context.Context, videoID string) (*models.ArchivedReport, error) {
	row := &reportRow{}
	if err := r.db.GetContext(ctx, row, getReportByVideoIDQuery, videoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, analysis.ErrJobNotFound
		}
		return nil, errors.Wrap(err, "reportRepo.GetReportByVideoID.GetContext")
	}
	return row.toModel()
}

func (r *reportRepo) GetReports(ctx context.Context, pagination *utils.Pagination) (*models.ReportList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalReportsQuery); err != nil {
		return nil, errors.Wrap(err, "reportRepo.GetReports.TotalCount")
	}
	if totalCount == 0 {
		return &models.ReportList{
			Reports:  make([]*models.ArchivedReport, 0),
			Page:     pagination.GetPage(),
			PageSize: pagination.GetSize(),
		}, nil
	}

	rows, err := r.db.QueryxContext(ctx, getReportsQuery, pagination.GetOffset(), pagination.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "reportRepo.GetReports.QueryxContext")
	}
	defer rows.Close()

	reports := make([]*models.ArchivedReport, 0, pagination.GetSize())
	for rows.Next() {
		row := &reportRow{}
		if err = rows.StructScan(row); err != nil {
			return nil, errors.Wrap(err, "reportRepo.GetReports.StructScan")
		}
		archived, err := row.toModel()
		if err != nil {
			return nil, err
		}
		reports = append(reports, archived)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reportRepo.GetReports.rows.Err")
	}

	return &models.ReportList{
		TotalCount: totalCount,
		Page:       pagination.GetPage(),
		PageSize:   pagination.GetSize(),
		HasMore:    utils.GetHasMore(pagination.GetPage(), totalCount, pagination.GetSize()),
		Reports:    reports,
	}, nil
}
