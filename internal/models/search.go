package models

import "time"

// SearchResult is one candidate media item returned by the external
// search collaborator.
type SearchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Duration     int    `json:"duration"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ViewCount    int64  `json:"view_count"`
}

// ArchivedReport is one row of the report archive.
type ArchivedReport struct {
	ReportID  string          `json:"report_id" db:"report_id"`
	JobID     string          `json:"job_id" db:"job_id"`
	VideoID   string          `json:"video_id" db:"video_id"`
	Title     string          `json:"title" db:"title"`
	Channel   string          `json:"channel" db:"channel"`
	RiskLevel string          `json:"risk_level" db:"risk_level"`
	Report    *AnalysisReport `json:"report" db:"-"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ReportList is a paginated page of archived reports.
type ReportList struct {
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	HasMore    bool              `json:"has_more"`
	Reports    []*ArchivedReport `json:"reports"`
}
