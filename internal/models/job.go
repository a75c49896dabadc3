package models

import "time"

type JobStage string

const (
	StageQueued          JobStage = "queued"
	StageDownloading     JobStage = "downloading"
	StageExtractingAudio JobStage = "extracting_audio"
	StageTranscribing    JobStage = "transcribing"
	StageAnalyzing       JobStage = "analyzing"
	StageCompleted       JobStage = "completed"
	StageFailed          JobStage = "failed"
)

// Terminal reports whether a job in this stage will never move again.
func (s JobStage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// AnalysisJob is the single source of truth for one pipeline run. It is
// mutated only by the orchestrator that owns the handle; pollers always
// receive a copy.
type AnalysisJob struct {
	JobID       string          `json:"job_id" redis:"job_id"`
	VideoID     string          `json:"video_id" redis:"video_id"`
	SourceURL   string          `json:"source_url" redis:"source_url"`
	Title       string          `json:"title" redis:"title"`
	Channel     string          `json:"channel" redis:"channel"`
	Stage       JobStage        `json:"stage" redis:"stage"`
	Progress    float64         `json:"progress" redis:"progress"`
	StatusText  string          `json:"status_text" redis:"status_text"`
	Error       string          `json:"error,omitempty" redis:"error"`
	Summary     *JobSummary     `json:"summary,omitempty" redis:"summary"`
	Report      *AnalysisReport `json:"report,omitempty" redis:"report"`
	CreatedAt   time.Time       `json:"created_at" redis:"created_at"`
	CompletedAt time.Time       `json:"completed_at,omitempty" redis:"completed_at"`
}

// JobSummary is the short form of a completed report, kept separate so
// pollers do not pay for the full report on every request.
type JobSummary struct {
	ContentType        string   `json:"content_type"`
	Sentiment          string   `json:"sentiment"`
	Languages          []string `json:"languages"`
	HateSpeech         bool     `json:"hate_speech"`
	ViolenceIncitation bool     `json:"violence_incitation"`
	RiskLevel          string   `json:"risk_level"`
	Summary            string   `json:"summary"`
}

// ArtifactLinks carries time-limited download URLs for a completed job's
// archived artifacts.
type ArtifactLinks struct {
	TranscriptURL string `json:"transcript_url"`
	ReportURL     string `json:"report_url"`
}

// JobProgress is the poll view of a job.
type JobProgress struct {
	JobID      string      `json:"job_id"`
	Stage      JobStage    `json:"stage"`
	Progress   float64     `json:"progress"`
	StatusText string      `json:"status_text"`
	Error      string      `json:"error,omitempty"`
	Summary    *JobSummary `json:"summary,omitempty"`
}

type SubmitJobInput struct {
	VideoID   string `json:"video_id" validate:"required"`
	SourceURL string `json:"source_url" validate:"required,url"`
	Title     string `json:"title" validate:"required"`
	Channel   string `json:"channel" validate:"omitempty"`
}

type DirectAnalyzeInput struct {
	VideoURL string `json:"video_url" validate:"required,url"`
	Title    string `json:"title" validate:"required"`
	Channel  string `json:"channel" validate:"omitempty"`
}

// ToProgress derives the poll view from the job's current state.
func (j *AnalysisJob) ToProgress() *JobProgress {
	return &JobProgress{
		JobID:      j.JobID,
		Stage:      j.Stage,
		Progress:   j.Progress,
		StatusText: j.StatusText,
		Error:      j.Error,
		Summary:    j.Summary,
	}
}

// Clone returns a deep enough copy for copy-on-read semantics: the nested
// report and summary are immutable once set, so sharing them is safe.
func (j *AnalysisJob) Clone() *AnalysisJob {
	c := *j
	return &c
}
