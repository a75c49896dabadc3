package repository

const (
	createReportQuery = `INSERT INTO analysis_reports (report_id, job_id, video_id, title, channel, risk_level, report, created_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, now()) RETURNING report_id, job_id, video_id, title, channel, risk_level, created_at`
	getReportByVideoIDQuery = `SELECT report_id, job_id, video_id, title, channel, risk_level, report, created_at FROM analysis_reports
					WHERE video_id = $1 ORDER BY created_at DESC LIMIT 1`
	getReportsQuery = `SELECT report_id, job_id, video_id, title, channel, risk_level, report, created_at FROM analysis_reports
					ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	getTotalReportsQuery = `SELECT COUNT(report_id) FROM analysis_reports`
)
