package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

// Stage checkpoints. The download stage fills 0-40 continuously from the
// downloader's own progress; the later stages land on fixed marks.
const (
	checkpointDownloaded  = 40
	checkpointExtracted   = 60
	checkpointTranscribed = 80
	checkpointCompleted   = 100

	defaultJobTimeout = 30 * time.Minute
)

// Orchestrator runs the full pipeline for one job per goroutine and is the
// only writer of that job's store entry.
type Orchestrator struct {
	cfg         *config.Config
	store       analysis.JobStore
	fetcher     analysis.MediaFetcher
	extractor   analysis.AudioExtractor
	transcriber analysis.Transcriber
	analyzer    analysis.ContentAnalyzer
	reportRepo  analysis.ReportRepository
	archiveRepo analysis.ArchiveRepository
	janitor     *Janitor
	logger      logger.Logger

	sem chan struct{}

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewOrchestrator wires the pipeline. reportRepo and archiveRepo may be nil
// when the deployment runs without Postgres or object storage.
func NewOrchestrator(
	cfg *config.Config,
	store analysis.JobStore,
	fetcher analysis.MediaFetcher,
	extractor analysis.AudioExtractor,
	transcriber analysis.Transcriber,
	analyzer analysis.ContentAnalyzer,
	reportRepo analysis.ReportRepository,
	archiveRepo analysis.ArchiveRepository,
	janitor *Janitor,
	logger logger.Logger,
) *Orchestrator {
	maxJobs := cfg.Worker.MaxConcurrentJobs
	if maxJobs <= 0 {
		maxJobs = 4
	}
	return &Orchestrator{
		cfg:         cfg,
		store:       store,
		fetcher:     fetcher,
		extractor:   extractor,
		transcriber: transcriber,
		analyzer:    analyzer,
		reportRepo:  reportRepo,
		archiveRepo: archiveRepo,
		janitor:     janitor,
		logger:      logger,
		sem:         make(chan struct{}, maxJobs),
		cancels:     make(map[string]context.CancelFunc),
	}
}

// Launch starts the pipeline for a freshly created job and returns
// immediately. The job runs under its own deadline so a stuck external tool
// cannot hold resources forever.
func (o *Orchestrator) Launch(job *models.AnalysisJob) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultJobTimeout)

	o.mu.Lock()
	o.cancels[job.JobID] = cancel
	o.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			o.mu.Lock()
			delete(o.cancels, job.JobID)
			o.mu.Unlock()
		}()

		// The job stays Queued until a pipeline slot frees up; a cancelled
		// job never takes a slot at all.
		select {
		case o.sem <- struct{}{}:
			defer func() { <-o.sem }()
		case <-ctx.Done():
			o.fail(job, ctx.Err())
			o.janitor.Schedule(job.JobID)
			return
		}
		o.run(ctx, job)
	}()
}

// Cancel abandons a running job and reclaims its scratch resources early.
func (o *Orchestrator) Cancel(jobID string) bool {
	o.mu.Lock()
	cancel, ok := o.cancels[jobID]
	o.mu.Unlock()
	if !ok {
		return false
	}
	cancel()
	return true
}

func (o *Orchestrator) run(ctx context.Context, job *models.AnalysisJob) {
	// Terminal state always rides the retention window, success or not.
	defer o.janitor.Schedule(job.JobID)

	o.setStage(job, models.StageDownloading, 0, "Downloading video")
	mediaPath, err := o.fetcher.Fetch(ctx, job.SourceURL, job.JobID, func(percent float64) {
		o.setDownloadProgress(job, percent)
	})
	if err != nil {
		o.fail(job, err)
		return
	}

	o.setStage(job, models.StageExtractingAudio, checkpointDownloaded, "Extracting audio track")
	audioPath, err := o.extractor.Extract(ctx, mediaPath)
	if err != nil {
		o.fail(job, err)
		return
	}

	o.setStage(job, models.StageTranscribing, checkpointExtracted, "Transcribing audio")
	transcript, err := o.transcriber.Transcribe(ctx, audioPath, o.cfg.Transcriber.Language)
	if err != nil {
		o.fail(job, err)
		return
	}

	o.setStage(job, models.StageAnalyzing, checkpointTranscribed, "Analyzing content")
	report, err := o.analyzer.AnalyzeTranscript(ctx, transcript, job.Title, job.Channel)
	if err != nil {
		o.fail(job, err)
		return
	}

	o.complete(job, report)
	o.archive(job, transcript, report)
}

// setStage commits a stage transition. Percent and stage move in the same
// store write so a poller can never observe 100 with a non-terminal stage.
func (o *Orchestrator) setStage(job *models.AnalysisJob, stage models.JobStage, percent float64, statusText string) {
	job.Stage = stage
	if percent > job.Progress {
		job.Progress = percent
	}
	job.StatusText = statusText
	if err := o.store.Update(context.Background(), job); err != nil {
		o.logger.Errorf("job %s: failed to commit stage %s: %v", job.JobID, stage, err)
	}
}

// setDownloadProgress scales downloader percent into the 0-40 range.
// Progress is monotonic: late or out-of-order callbacks never move it back.
func (o *Orchestrator) setDownloadProgress(job *models.AnalysisJob, percent float64) {
	scaled := percent * checkpointDownloaded / 100
	if scaled <= job.Progress {
		return
	}
	job.Progress = scaled
	if err := o.store.Update(context.Background(), job); err != nil {
		o.logger.Errorf("job %s: failed to update download progress: %v", job.JobID, err)
	}
}

func (o *Orchestrator) complete(job *models.AnalysisJob, report *models.AnalysisReport) {
	job.Stage = models.StageCompleted
	job.Progress = checkpointCompleted
	job.StatusText = "Analysis complete"
	job.Report = report
	job.Summary = report.ShortSummary()
	job.CompletedAt = time.Now()
	if err := o.store.Update(context.Background(), job); err != nil {
		o.logger.Errorf("job %s: failed to commit completion: %v", job.JobID, err)
	}
	o.logger.Infof("job %s completed, risk level %s", job.JobID, report.RiskLevel)
}

// fail is terminal: no retry, no partial result. Only the adapter level
// diagnostic reaches the user visible error field.
func (o *Orchestrator) fail(job *models.AnalysisJob, err error) {
	job.Stage = models.StageFailed
	job.StatusText = "Pipeline failed"
	job.Error = err.Error()
	job.CompletedAt = time.Now()
	if updateErr := o.store.Update(context.Background(), job); updateErr != nil {
		o.logger.Errorf("job %s: failed to commit failure: %v", job.JobID, updateErr)
	}
	o.logger.Errorf("job %s failed: %v", job.JobID, err)
}

// archive is best effort: the job result already lives in the store, so
// archive errors are logged, never surfaced to the job.
func (o *Orchestrator) archive(job *models.AnalysisJob, transcript string, report *models.AnalysisReport) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if o.reportRepo != nil {
		archived := &models.ArchivedReport{
			ReportID:  uuid.New().String(),
			JobID:     job.JobID,
			VideoID:   job.VideoID,
			Title:     job.Title,
			Channel:   job.Channel,
			RiskLevel: report.RiskLevel,
			Report:    report,
		}
		if _, err := o.reportRepo.CreateReport(ctx, archived); err != nil {
			o.logger.Errorf("job %s: failed to archive report: %v", job.JobID, err)
		}
	}

	if o.archiveRepo != nil {
		if err := o.archiveRepo.PutObject(ctx, analysis.TranscriptKey(job.JobID), "text/plain", strings.NewReader(transcript)); err != nil {
			o.logger.Errorf("job %s: failed to archive transcript: %v", job.JobID, err)
		}
		if data, err := json.Marshal(report); err == nil {
			if err := o.archiveRepo.PutObject(ctx, analysis.ReportKey(job.JobID), "application/json", strings.NewReader(string(data))); err != nil {
				o.logger.Errorf("job %s: failed to archive report json: %v", job.JobID, err)
			}
		}
	}
}
