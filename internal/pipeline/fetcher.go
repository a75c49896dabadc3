package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

const (
	// Progress writes are rate bounded so the job store is not hammered by
	// every yt-dlp output line.
	progressMinInterval = 500 * time.Millisecond
)

// ytDlpFetcher downloads media with the yt-dlp binary.
type ytDlpFetcher struct {
	binaryPath string
	scratchDir string
	logger     logger.Logger
}

func NewYtDlpFetcher(binaryPath, scratchDir string, logger logger.Logger) analysis.MediaFetcher {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &ytDlpFetcher{
		binaryPath: binaryPath,
		scratchDir: scratchDir,
		logger:     logger,
	}
}

func (f *ytDlpFetcher) Fetch(ctx context.Context, sourceURL, localID string, onProgress analysis.ProgressFunc) (string, error) {
	if err := os.MkdirAll(f.scratchDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: cannot create scratch directory", analysis.ErrFetchFailed)
	}

	outTemplate := filepath.Join(f.scratchDir, localID+".%(ext)s")
	cmd := exec.CommandContext(ctx, f.binaryPath,
		"--newline",
		"--no-warnings",
		"--no-playlist",
		"-f", "mp4/b",
		"-o", outTemplate,
		sourceURL,
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrFetchFailed, err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrFetchFailed, err)
	}

	lastEmit := time.Time{}
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		percent, ok := ParseDownloadProgress(scanner.Text())
		if !ok || onProgress == nil {
			continue
		}
		if time.Since(lastEmit) < progressMinInterval && percent < 100 {
			continue
		}
		lastEmit = time.Now()
		onProgress(percent)
	}

	if err := cmd.Wait(); err != nil {
		f.cleanPartials(localID)
		return "", fmt.Errorf("%w: %s", analysis.ErrFetchFailed, toolDiagnostic(stderr.String(), err))
	}

	// yt-dlp has been seen to exit 0 without writing any output. Treat a
	// missing artifact as a hard failure, never as an empty result.
	artifact, err := f.findArtifact(localID)
	if err != nil {
		return "", err
	}
	return artifact, nil
}

func (f *ytDlpFetcher) findArtifact(localID string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(f.scratchDir, localID+".*"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrFetchFailed, err)
	}
	for _, m := range matches {
		if strings.HasSuffix(m, ".part") || strings.HasSuffix(m, ".ytdl") {
			continue
		}
		return m, nil
	}
	return "", fmt.Errorf("%w: downloader reported success but produced no file", analysis.ErrFetchFailed)
}

func (f *ytDlpFetcher) cleanPartials(localID string) {
	matches, err := filepath.Glob(filepath.Join(f.scratchDir, localID+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			f.logger.Warnf("failed to remove partial artifact %s: %v", m, err)
		}
	}
}

// ParseDownloadProgress extracts the percent from a yt-dlp --newline
// progress line, e.g. "[download]  42.3% of 12.34MiB at 1.20MiB/s".
func ParseDownloadProgress(line string) (float64, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		return 0, false
	}
	fields := strings.Fields(line)
	for _, field := range fields[1:] {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
		if err != nil {
			return 0, false
		}
		if percent < 0 || percent > 100 {
			return 0, false
		}
		return percent, true
	}
	return 0, false
}

// toolDiagnostic keeps the external tool's own message and drops empty
// noise, so the user visible error stays meaningful.
func toolDiagnostic(stderr string, err error) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return err.Error()
	}
	lines := strings.Split(stderr, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return err.Error()
	}
	return last
}
