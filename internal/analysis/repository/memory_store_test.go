package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/models"
)

func sampleJob(jobID string) *models.AnalysisJob {
	return &models.AnalysisJob{
		JobID:      jobID,
		VideoID:    "vid1",
		SourceURL:  "https://example/video/vid1",
		Title:      "Sample",
		Stage:      models.StageQueued,
		StatusText: "Job queued",
		CreatedAt:  time.Now(),
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	job := sampleJob("download_vid1_1")
	require.NoError(t, store.Create(ctx, job))

	got, err := store.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, job.JobID, got.JobID)
	assert.Equal(t, models.StageQueued, got.Stage)
}

func TestMemoryStoreCreateDuplicate(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	job := sampleJob("download_vid1_1")
	require.NoError(t, store.Create(ctx, job))
	assert.Error(t, store.Create(ctx, job))
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryJobStore()

	_, err := store.Get(context.Background(), "download_nope_1")
	assert.ErrorIs(t, err, analysis.ErrJobNotFound)
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	store := NewMemoryJobStore()

	err := store.Update(context.Background(), sampleJob("download_nope_1"))
	assert.ErrorIs(t, err, analysis.ErrJobNotFound)
}

func TestMemoryStoreCopyOnRead(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	job := sampleJob("download_vid1_1")
	require.NoError(t, store.Create(ctx, job))

	// Mutating the caller's value after Create must not affect the store.
	job.Stage = models.StageFailed
	got, err := store.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.StageQueued, got.Stage)

	// Mutating a read value must not affect later reads.
	got.Progress = 99
	again, err := store.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), again.Progress)
}

func TestMemoryStoreReadSurvivesDelete(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	job := sampleJob("download_vid1_1")
	job.Stage = models.StageCompleted
	job.Progress = 100
	require.NoError(t, store.Create(ctx, job))

	got, err := store.Get(ctx, job.JobID)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, job.JobID))

	// The value read before the delete stays intact.
	assert.Equal(t, models.StageCompleted, got.Stage)
	assert.Equal(t, float64(100), got.Progress)

	_, err = store.Get(ctx, job.JobID)
	assert.ErrorIs(t, err, analysis.ErrJobNotFound)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	assert.NoError(t, store.Delete(ctx, "download_never_1"))

	job := sampleJob("download_vid1_1")
	require.NoError(t, store.Create(ctx, job))
	assert.NoError(t, store.Delete(ctx, job.JobID))
	assert.NoError(t, store.Delete(ctx, job.JobID))
}
