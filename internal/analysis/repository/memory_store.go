package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/models"
)

// memoryJobStore keeps all job state in a process local map. Good for a
// single instance deployment; the Redis store replaces it when configured.
type memoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.AnalysisJob
}

func NewMemoryJobStore() analysis.JobStore {
	return &memoryJobStore{
		jobs: make(map[string]*models.AnalysisJob),
	}
}

func (s *memoryJobStore) Create(ctx context.Context, job *models.AnalysisJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.JobID]; exists {
		return fmt.Errorf("job %s already exists", job.JobID)
	}
	s.jobs[job.JobID] = job.Clone()
	return nil
}

func (s *memoryJobStore) Get(ctx context.Context, jobID string) (*models.AnalysisJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, analysis.ErrJobNotFound
	}
	// Copy-on-read: a purge racing this call must not invalidate the value
	// the poller already holds.
	return job.Clone(), nil
}

func (s *memoryJobStore) Update(ctx context.Context, job *models.AnalysisJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.JobID]; !ok {
		return analysis.ErrJobNotFound
	}
	s.jobs[job.JobID] = job.Clone()
	return nil
}

func (s *memoryJobStore) Delete(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
	return nil
}
