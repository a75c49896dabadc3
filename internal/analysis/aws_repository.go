package analysis

import (
	"context"
	"io"
)

// ArchiveRepository stores job artifacts (transcript, report JSON) in object
// storage before the scratch directory is purged.
type ArchiveRepository interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) error
	RemoveObject(ctx context.Context, key string) error
	GetPresignedURL(ctx context.Context, key string) (string, error)
}

// TranscriptKey is the archive object key of a job's transcript.
func TranscriptKey(jobID string) string {
	return jobID + "/transcript.txt"
}

// ReportKey is the archive object key of a job's report JSON.
func ReportKey(jobID string) string {
	return jobID + "/report.json"
}
