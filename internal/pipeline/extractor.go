package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mamadousow/clipsentry/internal/analysis"
)

// ffmpegExtractor converts a media artifact to mono 16 kHz WAV, the input
// format the transcription service expects.
type ffmpegExtractor struct {
	binaryPath string
}

func NewFFmpegExtractor(binaryPath string) analysis.AudioExtractor {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &ffmpegExtractor{
		binaryPath: binaryPath,
	}
}

func (e *ffmpegExtractor) Extract(ctx context.Context, mediaPath string) (string, error) {
	ext := filepath.Ext(mediaPath)
	audioPath := strings.TrimSuffix(mediaPath, ext) + ".wav"

	cmd := exec.CommandContext(ctx, e.binaryPath,
		"-i", mediaPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-y", audioPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", analysis.ErrExtractionFailed, toolDiagnostic(stderr.String(), err))
	}

	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("%w: transcoder produced no audio file", analysis.ErrExtractionFailed)
	}
	return audioPath, nil
}
