package analysis

import (
	"context"
	"errors"

	"github.com/mamadousow/clipsentry/internal/models"
)

// Stage failure taxonomy. Adapters wrap these with the underlying tool's
// diagnostic text; a wrapped stage error is terminal for its job.
var (
	ErrFetchFailed         = errors.New("fetch failed")
	ErrExtractionFailed    = errors.New("audio extraction failed")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrAnalysisFailed      = errors.New("analysis failed")
)

// ProgressFunc receives percent values in the 0-100 range of a single stage.
type ProgressFunc func(percent float64)

// MediaFetcher resolves a source URL into a local media artifact named after
// localID inside the scratch directory. Implementations must verify the
// artifact exists after the external tool returns.
type MediaFetcher interface {
	Fetch(ctx context.Context, sourceURL, localID string, onProgress ProgressFunc) (string, error)
}

// AudioExtractor converts a media artifact into mono 16 kHz audio.
type AudioExtractor interface {
	Extract(ctx context.Context, mediaPath string) (string, error)
}

// Transcriber turns an audio artifact into plain text in the hinted language.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageHint string) (string, error)
}

// ContentAnalyzer produces a schema complete AnalysisReport from either a
// transcript or a remote video URL. The two strategies are first-class
// alternatives, never fallbacks of one another.
type ContentAnalyzer interface {
	AnalyzeTranscript(ctx context.Context, transcript, title, channel string) (*models.AnalysisReport, error)
	AnalyzeURL(ctx context.Context, videoURL, title, channel string) (*models.AnalysisReport, error)
}

// SearchProvider is the external search collaborator.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}
