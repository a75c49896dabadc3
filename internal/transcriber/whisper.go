package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

// whisperClient talks to an OpenAI compatible audio transcription endpoint.
type whisperClient struct {
	cfg        config.TranscriberConfig
	httpClient *http.Client
	logger     logger.Logger
}

func NewWhisperClient(cfg config.TranscriberConfig, logger logger.Logger) analysis.Transcriber {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &whisperClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (w *whisperClient) Transcribe(ctx context.Context, audioPath, languageHint string) (string, error) {
	audioFile, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: cannot open audio artifact", analysis.ErrTranscriptionFailed)
	}
	defer audioFile.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrTranscriptionFailed, err)
	}
	if _, err = io.Copy(part, audioFile); err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrTranscriptionFailed, err)
	}
	_ = writer.WriteField("model", w.cfg.Model)
	if languageHint != "" {
		_ = writer.WriteField("language", languageHint)
	}
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrTranscriptionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrTranscriptionFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if w.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.APIKey)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrTranscriptionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		w.logger.Errorf("transcription service returned %d: %s", resp.StatusCode, respBody)
		return "", fmt.Errorf("%w: service returned status %d", analysis.ErrTranscriptionFailed, resp.StatusCode)
	}

	var result transcriptionResponse
	if err = json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: invalid service response", analysis.ErrTranscriptionFailed)
	}
	if result.Text == "" {
		return "", fmt.Errorf("%w: service returned empty transcript", analysis.ErrTranscriptionFailed)
	}
	return result.Text, nil
}
