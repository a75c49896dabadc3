package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

// Janitor purges terminal jobs and their scratch artifacts after the
// retention window. Every scheduled purge is cancellable and idempotent:
// artifacts may already be gone, moved, or never created.
type Janitor struct {
	store      analysis.JobStore
	scratchDir string
	retention  time.Duration
	logger     logger.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewJanitor(store analysis.JobStore, scratchDir string, retention time.Duration, logger logger.Logger) *Janitor {
	return &Janitor{
		store:      store,
		scratchDir: scratchDir,
		retention:  retention,
		logger:     logger,
		timers:     make(map[string]*time.Timer),
	}
}

// Schedule arms the purge timer for a job that just reached a terminal
// stage. Scheduling the same job again resets its timer.
func (j *Janitor) Schedule(jobID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if timer, ok := j.timers[jobID]; ok {
		timer.Stop()
	}
	j.timers[jobID] = time.AfterFunc(j.retention, func() {
		j.Purge(jobID)
	})
}

// Cancel disarms a pending purge, e.g. when the caller abandons the job and
// cleanup runs immediately instead.
func (j *Janitor) Cancel(jobID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if timer, ok := j.timers[jobID]; ok {
		timer.Stop()
		delete(j.timers, jobID)
	}
}

// Purge removes the job's scratch artifacts and store entry. Safe to call
// more than once; a poll after purge gets NotFound and stays NotFound.
func (j *Janitor) Purge(jobID string) {
	j.mu.Lock()
	delete(j.timers, jobID)
	j.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(j.scratchDir, jobID+".*"))
	if err == nil {
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
				j.logger.Warnf("janitor: failed to remove artifact %s: %v", m, err)
			}
		}
	}

	if err := j.store.Delete(context.Background(), jobID); err != nil {
		j.logger.Warnf("janitor: failed to delete job %s: %v", jobID, err)
	}
}

// Stop disarms all pending purges, used on shutdown.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for jobID, timer := range j.timers {
		timer.Stop()
		delete(j.timers, jobID)
	}
}
