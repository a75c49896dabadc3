package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

// llmAnalyzer implements both analysis strategies against an OpenAI
// compatible chat completions endpoint. The transcript strategy uses the
// text model; the direct-URL strategy uses the multimodal model.
type llmAnalyzer struct {
	cfg        config.AnalyzerConfig
	httpClient *http.Client
	logger     logger.Logger
}

func NewLLMAnalyzer(cfg config.AnalyzerConfig, logger logger.Logger) analysis.ContentAnalyzer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &llmAnalyzer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	VideoURL *videoURL `json:"video_url,omitempty"`
}

type videoURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *llmAnalyzer) AnalyzeTranscript(ctx context.Context, transcript, title, channel string) (*models.AnalysisReport, error) {
	req := chatRequest{
		Model: a.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: buildTranscriptPrompt(transcript, title, channel)},
		},
	}
	raw, err := a.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return ParseReport(ctx, raw)
}

func (a *llmAnalyzer) AnalyzeURL(ctx context.Context, sourceURL, title, channel string) (*models.AnalysisReport, error) {
	req := chatRequest{
		Model: a.cfg.VisionModel,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: buildURLPrompt(title, channel)},
					{Type: "video_url", VideoURL: &videoURL{URL: sourceURL}},
				},
			},
		},
	}
	raw, err := a.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return ParseReport(ctx, raw)
}

func (a *llmAnalyzer) complete(ctx context.Context, chatReq chatRequest) (string, error) {
	payload, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrAnalysisFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrAnalysisFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		a.logger.Errorf("analyzer service returned %d: %s", resp.StatusCode, respBody)
		return "", fmt.Errorf("%w: service returned status %d", analysis.ErrAnalysisFailed, resp.StatusCode)
	}

	var chatResp chatResponse
	if err = json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%w: invalid service response", analysis.ErrAnalysisFailed)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: service returned no choices", analysis.ErrAnalysisFailed)
	}
	return chatResp.Choices[0].Message.Content, nil
}
