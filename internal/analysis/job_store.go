package analysis

import (
	"context"
	"errors"

	"github.com/mamadousow/clipsentry/internal/models"
)

// ErrJobNotFound is returned for unknown or already purged job handles.
var ErrJobNotFound = errors.New("job not found")

// JobStore holds per-job pipeline state. Access is single-writer-many-reader
// per handle: only the orchestrator owning a job mutates its entry, and Get
// must return a copy the caller can hold across a concurrent purge.
type JobStore interface {
	Create(ctx context.Context, job *models.AnalysisJob) error
	Get(ctx context.Context, jobID string) (*models.AnalysisJob, error)
	Update(ctx context.Context, job *models.AnalysisJob) error
	Delete(ctx context.Context, jobID string) error
}
