package analyzer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

func newAnalyzerLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := logger.NewApiLogger(&config.Config{
		Server: config.ServerConfig{Mode: "Development"},
		Logger: config.Logger{Level: "error", Encoding: "console"},
	})
	l.InitLogger()
	return l
}

func chatCompletion(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestAnalyzeTranscript(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, chatCompletion("Here is the analysis:\n"+validReportJSON))
	}))
	defer srv.Close()

	a := NewLLMAnalyzer(config.AnalyzerConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Model:    "text-model",
	}, newAnalyzerLogger(t))

	report, err := a.AnalyzeTranscript(context.Background(), "les prix du carburant", "Carburant", "ActuTV")
	require.NoError(t, err)
	assert.Equal(t, "low", report.RiskLevel)
	assert.Equal(t, "Bearer test-key", gotAuth)

	var req chatRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, "text-model", req.Model)
	require.Len(t, req.Messages, 1)
	prompt, ok := req.Messages[0].Content.(string)
	require.True(t, ok)
	assert.Contains(t, prompt, "les prix du carburant")
	assert.Contains(t, prompt, "Carburant")
}

func TestAnalyzeURLUsesVisionModel(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, chatCompletion(validReportJSON))
	}))
	defer srv.Close()

	a := NewLLMAnalyzer(config.AnalyzerConfig{
		Endpoint:    srv.URL,
		Model:       "text-model",
		VisionModel: "vision-model",
	}, newAnalyzerLogger(t))

	report, err := a.AnalyzeURL(context.Background(), "https://example/video/abc", "Title", "Channel")
	require.NoError(t, err)
	assert.Equal(t, "negative", report.Sentiment)

	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Content []contentPart `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, "vision-model", req.Model)
	require.Len(t, req.Messages, 1)
	require.Len(t, req.Messages[0].Content, 2)
	assert.Equal(t, "text", req.Messages[0].Content[0].Type)
	assert.Equal(t, "video_url", req.Messages[0].Content[1].Type)
	require.NotNil(t, req.Messages[0].Content[1].VideoURL)
	assert.Equal(t, "https://example/video/abc", req.Messages[0].Content[1].VideoURL.URL)
}

func TestAnalyzeTranscriptServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewLLMAnalyzer(config.AnalyzerConfig{Endpoint: srv.URL, Model: "m"}, newAnalyzerLogger(t))

	_, err := a.AnalyzeTranscript(context.Background(), "t", "title", "channel")
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}

func TestAnalyzeTranscriptNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	a := NewLLMAnalyzer(config.AnalyzerConfig{Endpoint: srv.URL, Model: "m"}, newAnalyzerLogger(t))

	_, err := a.AnalyzeTranscript(context.Background(), "t", "title", "channel")
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}

func TestAnalyzeTranscriptNonJSONAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatCompletion("I cannot analyze this content."))
	}))
	defer srv.Close()

	a := NewLLMAnalyzer(config.AnalyzerConfig{Endpoint: srv.URL, Model: "m"}, newAnalyzerLogger(t))

	_, err := a.AnalyzeTranscript(context.Background(), "t", "title", "channel")
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}
